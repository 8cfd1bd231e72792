// keypad-set-gif, bir GIF dosyasını tuşta veya tam ekranda animasyon olarak
// oynatır. Ctrl+C'ye kadar çalışır.
//
//	keypad-set-gif -key 0 spinner.gif
//	keypad-set-gif -screen -once intro.gif
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	mxkeypad "github.com/alparslanahmed/mx-keypad"
)

func main() {
	device := flag.String("device", "", "hidraw cihaz yolu (boşsa otomatik bulunur)")
	key := flag.Int("key", 0, "hedef tuş indeksi (0-8)")
	screen := flag.Bool("screen", false, "tuş yerine tam ekranda oynat")
	once := flag.Bool("once", false, "döngü yerine tek geçiş")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal("kullanım: keypad-set-gif [-device yol] [-key N | -screen] [-once] dosya.gif")
	}
	gifPath := flag.Arg(0)

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

	loop := !*once
	var err error
	if *screen {
		err = dev.SetScreenGifFromFile(gifPath, loop)
	} else {
		err = dev.SetKeyGifFromFile(*key, gifPath, loop)
	}
	if err != nil {
		log.Fatal(err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
