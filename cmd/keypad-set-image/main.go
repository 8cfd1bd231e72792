// keypad-set-image, bir JPEG dosyasını tuşa veya tam ekrana yükler.
//
//	keypad-set-image -key 0 icon.jpg
//	keypad-set-image -screen wallpaper.jpg
package main

import (
	"flag"
	"log"
	"os"

	mxkeypad "github.com/alparslanahmed/mx-keypad"
)

func main() {
	device := flag.String("device", "", "hidraw cihaz yolu (boşsa otomatik bulunur)")
	key := flag.Int("key", 0, "hedef tuş indeksi (0-8)")
	screen := flag.Bool("screen", false, "tuş yerine tam ekrana yükle")
	verbose := flag.Bool("v", false, "ayrıntılı log")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("kullanım: keypad-set-image [-device yol] [-key N | -screen] dosya.jpg")
	}

	jpegData, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	path := *device
	if path == "" {
		if path, err = mxkeypad.FindFirstKeypad(); err != nil {
			log.Fatal(err)
		}
	}

	var options []mxkeypad.DeviceOption
	if *verbose {
		options = append(options, mxkeypad.WithLogger(log.Default()))
	}

	dev := mxkeypad.NewDevice(path, options...)
	if err := dev.Initialize(); err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	if *screen {
		err = dev.SetScreenImage(jpegData)
	} else {
		err = dev.SetKeyImage(*key, jpegData)
	}
	if err != nil {
		log.Fatal(err)
	}
}
