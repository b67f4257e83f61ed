package sample

func NewInventory() {
	seed()
}

func seed() {
	rand()
}
