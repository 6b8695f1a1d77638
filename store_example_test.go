package slotstore_test

import (
	"fmt"

	"go.dw1.io/slotstore"
)

// ExampleStore demonstrates basic store operations.
func ExampleStore() {
	store := slotstore.New[int]()
	defer store.Reset()

	// Add a value and keep its index
	id := store.Add(1234)

	if value, ok := store.Get(id); ok {
		fmt.Println("Found:", value)
	}
	fmt.Println("Contains:", store.Contains(id))

	// Remove hands the value back
	removed, ok := store.Remove(id)
	fmt.Printf("Removed: %d, Was present: %t\n", removed, ok)
	fmt.Println("Contains after remove:", store.Contains(id))

	// Output:
	// Found: 1234
	// Contains: true
	// Removed: 1234, Was present: true
	// Contains after remove: false
}

// ExampleStore_Add demonstrates index reuse.
func ExampleStore_Add() {
	store := slotstore.New[string]()
	defer store.Reset()

	a := store.Add("a")
	b := store.Add("b")
	store.Add("c")
	fmt.Println("Indices:", a, b)

	// The freed index of "b" is handed out again
	store.Remove(b)
	d := store.Add("d")
	fmt.Println("Reused:", d == b)

	// Output:
	// Indices: 0 1
	// Reused: true
}

// ExampleStore_Remove demonstrates that capacity is given back as values
// expire.
func ExampleStore_Remove() {
	store := slotstore.New[int]()
	defer store.Reset()

	for i := range 10_000 {
		store.Add(i)
	}
	for i := range 9_990 {
		store.Remove(slotstore.Index(i))
	}

	fmt.Println("Len:", store.Len())
	fmt.Println("Cap:", store.Cap())

	v, _ := store.Get(9_995)
	fmt.Println("Value:", v)

	// Output:
	// Len: 10
	// Cap: 20
	// Value: 9995
}

// ExampleStore_All demonstrates iterating over all live values.
func ExampleStore_All() {
	store := slotstore.New[string]()
	defer store.Reset()

	store.Add("x")
	y := store.Add("y")
	store.Add("z")
	store.Remove(y)

	for id, value := range store.All() {
		fmt.Printf("%d:%s\n", id, value)
	}

	// Output:
	// 0:x
	// 2:z
}

// ExampleStore_Set demonstrates replacing a stored value.
func ExampleStore_Set() {
	store := slotstore.New[string]()
	defer store.Reset()

	id := store.Add("pending")
	store.Set(id, "done")

	value, _ := store.Get(id)
	fmt.Println("Value:", value)

	// Output:
	// Value: done
}

// ExampleStore_UpdateStats demonstrates reading store stats.
func ExampleStore_UpdateStats() {
	store := slotstore.New[int]()
	defer store.Reset()

	id := store.Add(1)
	store.Get(id)
	store.Get(id + 1)

	var s slotstore.Stats
	store.UpdateStats(&s)
	fmt.Printf("Hits: %d, Misses: %d, Entries: %d\n", s.Hits, s.Misses, s.EntriesCount)

	// Output:
	// Hits: 1, Misses: 1, Entries: 1
}

// ExampleSyncStore demonstrates a store shared between goroutines.
func ExampleSyncStore() {
	store := slotstore.NewSync[string]()
	defer store.Reset()

	done := make(chan slotstore.Index)
	go func() {
		done <- store.Add("from goroutine")
	}()

	value, _ := store.Get(<-done)
	fmt.Println(value)

	// Output:
	// from goroutine
}
