package packedgo_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/packedgo"
)

// Example demonstrates the basic insert/get/remove lifecycle.
func Example() {
	store, err := packedgo.New[string](16)
	if err != nil {
		log.Fatal(err)
	}

	h, err := store.Insert("hello")
	if err != nil {
		log.Fatal(err)
	}

	if v, ok := store.Get(h); ok {
		fmt.Println(*v)
	}

	value, _ := store.Remove(h)
	fmt.Println(value)

	_, ok := store.Get(h)
	fmt.Println(ok)
	// Output:
	// hello
	// hello
	// false
}

// Example_staleHandles shows that a handle stays invalid even after its slot
// is reused by a new value.
func Example_staleHandles() {
	store, err := packedgo.New[string](4)
	if err != nil {
		log.Fatal(err)
	}

	old, _ := store.Insert("first tenant")
	store.Remove(old)

	// The new value reuses the freed slot at a bumped generation.
	fresh, _ := store.Insert("second tenant")

	_, ok := store.Get(old)
	fmt.Println("old handle resolves:", ok)

	v, _ := store.Get(fresh)
	fmt.Println("fresh handle resolves:", *v)
	// Output:
	// old handle resolves: false
	// fresh handle resolves: second tenant
}

// Example_iteration iterates the dense backing array.
func Example_iteration() {
	store, err := packedgo.New[int](8)
	if err != nil {
		log.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if _, err := store.Insert(i); err != nil {
			log.Fatal(err)
		}
	}

	sum := 0
	for v := range store.Values() {
		sum += *v
	}
	fmt.Println("len:", store.Len(), "sum:", sum)
	// Output: len: 3 sum: 6
}

// Example_capacity shows the hard capacity ceiling.
func Example_capacity() {
	store, err := packedgo.New[string](1)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := store.Insert("fits"); err != nil {
		log.Fatal(err)
	}
	if _, err := store.Insert("does not"); err != nil {
		fmt.Println(err)
	}
	fmt.Println("len:", store.Len())
	// Output:
	// max capacity exceeded
	// len: 1
}
