package graph

// GlobalCaller is the synthetic caller name used for calls observed outside
// any function body.
const GlobalCaller = "GLOBAL"

// --- Enums ---

// Direction controls call-graph traversal direction.
type Direction string

const (
	DirectionCallers Direction = "callers" // who calls this function?
	DirectionCallees Direction = "callees" // what does this function call?
)

// --- Models ---

// FunctionNode represents a declared function. Names form a single global
// namespace: the extractor performs no package or scope resolution.
type FunctionNode struct {
	Name string `json:"name"`
}

// CallEdge is a discovered (caller, callee) relationship, recorded once.
type CallEdge struct {
	Caller string `json:"caller"`
	Callee string `json:"callee"`
}

// CallChain is an ordered sequence of function names forming a call path.
type CallChain struct {
	Nodes []string `json:"nodes"`
	Depth int      `json:"depth"`
}

// GraphStats summarizes a call graph.
type GraphStats struct {
	FunctionCount int `json:"functionCount"`
	CallCount     int `json:"callCount"`
}
