package slotstore_test

import (
	"bytes"
	"fmt"

	"go.dw1.io/slotstore"
)

// ExampleStore_SaveTo demonstrates saving a store and loading it back.
func ExampleStore_SaveTo() {
	store := slotstore.New[string]()
	defer store.Reset()

	greeting := store.Add("hello")
	language := store.Add("Go")

	var buf bytes.Buffer
	if err := store.SaveTo(&buf); err != nil {
		fmt.Println("Error saving:", err)
		return
	}

	loaded, err := slotstore.LoadFrom[string](&buf)
	if err != nil {
		fmt.Println("Error loading:", err)
		return
	}

	// Indices stay valid across save and load
	g, _ := loaded.Get(greeting)
	l, _ := loaded.Get(language)
	fmt.Println(g, l)

	// Output:
	// hello Go
}
