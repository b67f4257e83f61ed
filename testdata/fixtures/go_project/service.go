package sample

var registry = NewInventory()

func Run() {
	item := lookup("widget")
	process(item)
}

func lookup(name string) string {
	return format(name)
}
