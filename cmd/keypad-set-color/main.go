// keypad-set-color, bir tuşu düz renge boyar.
//
//	keypad-set-color -key 4 -r 255 -g 128 -b 0
package main

import (
	"flag"
	"log"

	mxkeypad "github.com/alparslanahmed/mx-keypad"
)

func main() {
	device := flag.String("device", "", "hidraw cihaz yolu (boşsa otomatik bulunur)")
	key := flag.Int("key", 0, "hedef tuş indeksi (0-8)")
	r := flag.Uint("r", 0, "kırmızı (0-255)")
	g := flag.Uint("g", 0, "yeşil (0-255)")
	b := flag.Uint("b", 0, "mavi (0-255)")
	flag.Parse()

	path := *device
	if path == "" {
		var err error
		if path, err = mxkeypad.FindFirstKeypad(); err != nil {
			log.Fatal(err)
		}
	}

	dev := mxkeypad.NewDevice(path)
	if err := dev.Initialize(); err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	if err := dev.SetKeyColor(*key, uint8(*r), uint8(*g), uint8(*b)); err != nil {
		log.Fatal(err)
	}
}
