// keypad-devices, sistemdeki MX Keypad cihazlarını listeler.
//
//	keypad-devices
package main

import (
	"fmt"
	"log"

	mxkeypad "github.com/alparslanahmed/mx-keypad"
)

func main() {
	keypads, err := mxkeypad.FindKeypads()
	if err != nil {
		log.Fatal(err)
	}
	for _, kp := range keypads {
		fmt.Printf("%-16s %-40s %s\n", kp.Path, kp.Product, kp.Serial)
	}
}
