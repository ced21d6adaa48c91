package eheap

import "fmt"

func Example() {
	Init()

	ptr, _ := Alloc(64)
	fmt.Printf("usage: %d%%\n", GetUsagePercent())

	Free(ptr)
	fmt.Printf("usage after free: %d%%\n", GetUsagePercent())

	// Output:
	// usage: 3%
	// usage after free: 0%
}
