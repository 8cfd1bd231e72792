// keypad-monitor, tuş olaylarını canlı olarak ekrana döker. Ctrl+C ile çıkılır.
//
//	keypad-monitor
//	keypad-monitor -json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mxkeypad "github.com/alparslanahmed/mx-keypad"
)

func main() {
	device := flag.String("device", "", "hidraw cihaz yolu (boşsa otomatik bulunur)")
	asJSON := flag.Bool("json", false, "olayları JSON satırları olarak yaz")
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

	enc := json.NewEncoder(os.Stdout)
	dev.SetEventCallback(func(ev mxkeypad.Event) {
		if *asJSON {
			enc.Encode(struct {
				Kind      string `json:"kind"`
				Button    uint8  `json:"button"`
				Pressed   bool   `json:"pressed"`
				Timestamp int64  `json:"timestamp_ms"`
			}{ev.Kind.String(), ev.Button, ev.Pressed, ev.Timestamp})
			return
		}
		fmt.Println(ev)
	})

	if err := dev.StartMonitoring(); err != nil {
		log.Fatal(err)
	}
	log.Printf("izleniyor: %s (çıkmak için Ctrl+C)", path)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
