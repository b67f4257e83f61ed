package graph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dusk-indust/callflow/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordSink captures emitted statements as "node X" / "edge A B" strings.
type recordSink struct {
	statements []string
}

func (r *recordSink) Node(name string) error {
	r.statements = append(r.statements, "node "+name)
	return nil
}

func (r *recordSink) Edge(caller, callee string) error {
	r.statements = append(r.statements, fmt.Sprintf("edge %s %s", caller, callee))
	return nil
}

// extract runs a fresh extractor over one or more source units.
func extract(t *testing.T, units ...string) []string {
	t.Helper()
	sink := &recordSink{}
	ex := NewExtractor(sink)
	for i, src := range units {
		err := ex.Process(scan.New(strings.NewReader(src), fmt.Sprintf("unit%d.go", i)))
		require.NoError(t, err)
	}
	return sink.statements
}

func TestEmptyInputEmitsNothing(t *testing.T) {
	assert.Empty(t, extract(t, ""))
}

// Scenario A: a declaration followed by a call inside its body.
func TestDeclarationAndCall(t *testing.T) {
	got := extract(t, "func greet() { print() }")
	assert.Equal(t, []string{"node greet", "edge greet print"}, got)
}

// Scenario B: a call before any declaration is attributed to GLOBAL.
func TestTopLevelCallUsesGlobalSentinel(t *testing.T) {
	got := extract(t, "start()\nfunc helper() {}")
	assert.Equal(t, []string{"edge GLOBAL start", "node helper"}, got)
}

// A var binding suppresses call detection only until '='; the
// conversion-shaped right-hand side counts as a call, and the later
// occurrence of the same pair is collapsed by dedup.
func TestVarBindingSuppression(t *testing.T) {
	src := `func f() {
	var x = Type(1)
	Type(2)
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node f", "edge f Type"}, got)
}

// Scenario D: a block comment containing an unmatched quote is skipped in
// full and does not derail call detection after it.
func TestCommentWithQuoteDoesNotBreakExtraction(t *testing.T) {
	src := `func f() {
	/* unmatched " quote */
	g()
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node f", "edge f g"}, got)
}

func TestNodeEmittedOncePerRun(t *testing.T) {
	got := extract(t, "func dup() {}\nfunc dup() {}")
	assert.Equal(t, []string{"node dup"}, got)
}

func TestEdgeEmittedOncePerPair(t *testing.T) {
	src := `func f() {
	g()
	g()
	g()
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node f", "edge f g"}, got)
}

func TestSameCalleeDifferentCallers(t *testing.T) {
	src := `func a() { shared() }
func b() { shared() }`
	got := extract(t, src)
	assert.Equal(t, []string{
		"node a", "edge a shared",
		"node b", "edge b shared",
	}, got)
}

// A method declaration's receiver clause is wrapped in parens, so the depth
// guard makes the rule fire on the method name, not the receiver.
func TestReceiverClauseSkipped(t *testing.T) {
	src := `func (s *Server) Handle() {
	s.respond()
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node Handle", "edge Handle respond"}, got)
}

// Parameters and return types never shadow the declared name: the name is
// bound by the first depth-0 identifier, and the body brace ends the header.
func TestParametersAndResultsIgnored(t *testing.T) {
	src := `func transform(input string, count int) (string, error) {
	return clean(input)
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node transform", "edge transform clean"}, got)
}

// Calls in a declaration header (e.g. parameter defaults in other languages,
// or grouping parens) are not edges while inFuncDecl is set.
func TestNoCallDetectionInsideHeader(t *testing.T) {
	src := "func f(x Type) {}"
	got := extract(t, src)
	assert.Equal(t, []string{"node f"}, got)
}

// Closing the function body returns the caller to GLOBAL.
func TestCurrentFunctionClearedAtTopLevel(t *testing.T) {
	src := `func f() { inner() }
after()`
	got := extract(t, src)
	assert.Equal(t, []string{"node f", "edge f inner", "edge GLOBAL after"}, got)
}

// Nested braces inside the body do not clear the current function until the
// outermost brace closes.
func TestNestedBracesKeepCurrentFunction(t *testing.T) {
	src := `func f() {
	if true {
		deep()
	}
	tail()
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node f", "edge f deep", "edge f tail"}, got)
}

// Keywords directly before '(' are not callees: "if (..." and "for (..." do
// not produce edges because previousToken is not an identifier.
func TestKeywordBeforeParenIsNotACall(t *testing.T) {
	src := `func f() {
	if (ready) {
		go work()
	}
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node f", "edge f work"}, got)
}

// Cross-file dedup: the shared extractor collapses the same edge observed in
// two different input units.
func TestCrossFileEdgeDedup(t *testing.T) {
	got := extract(t,
		"func a() { shared() }",
		"func b() { shared() }\nfunc a() { shared() }",
	)
	assert.Equal(t, []string{
		"node a", "edge a shared",
		"node b", "edge b shared",
	}, got)
}

// Per-file state reset: an unclosed brace in one file must not leak the
// current function into the next file.
func TestStateResetBetweenFiles(t *testing.T) {
	got := extract(t,
		"func broken() { dangling(",
		"top()",
	)
	assert.Equal(t, []string{
		"node broken", "edge broken dangling",
		"edge GLOBAL top",
	}, got)
}

// A truncated literal ends the unit quietly; statements before it survive.
func TestTruncatedLiteralEndsUnit(t *testing.T) {
	got := extract(t, "func f() { g() }\nconst s = \"never closed")
	assert.Equal(t, []string{"node f", "edge f g"}, got)
}

func TestQuotedCallTextIsNotACall(t *testing.T) {
	src := `func f() {
	log("call hidden() inside string")
}`
	got := extract(t, src)
	assert.Equal(t, []string{"node f", "edge f log"}, got)
}
