// Package mxkeypad provides a Go driver for the Logitech MX Creative Console
// keypad: a 3x3 grid of LCD keys driven over a raw hidraw channel.
//
// # Overview
//
// The keypad exposes nine 118x118 pixel LCD keys separated by 40 pixel gaps,
// addressable individually or as one 434x434 screen. Images are uploaded as
// JPEG data framed into a vendor-specific chunked packet protocol; button
// presses arrive as raw HID reports that this library decodes into
// edge-triggered press/release events.
//
// # Protocol Architecture
//
// The image upload protocol was reverse engineered from USB captures:
//
//   - Every packet is exactly 4095 bytes, zero padded past its payload
//   - The first packet carries a 20-byte header: signature 14 ff 02 2b, a
//     sequence-control byte, a fixed geometry tag, big-endian x/y/width/height
//     and the true payload length
//   - Continuation packets carry only the 4-byte signature plus the
//     sequence-control byte
//   - The sequence-control byte encodes the part number (from 1) OR'ed with
//     0x20, plus 0x80 on the first and 0x40 on the last packet
//   - One image update is written as a single writev burst; concurrent
//     updates are serialized so bursts never interleave on the channel
//
// # Quick Start
//
//	path, err := mxkeypad.FindFirstKeypad()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dev := mxkeypad.NewDevice(path)
//	if err := dev.Initialize(); err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close()
//
//	jpegData, _ := os.ReadFile("icon.jpg")
//	dev.SetKeyImage(0, jpegData)
//
//	dev.SetEventCallback(func(ev mxkeypad.Event) {
//	    fmt.Println(ev)
//	})
//	dev.StartMonitoring()
//
// # Supported Features
//
//   - Per-key and full-screen JPEG images, raw placement at arbitrary
//     coordinates, solid key colors
//   - Looping GIF animations per key and full screen, with independent
//     background workers and join-on-stop semantics
//   - Button monitoring: 3x3 grid keys with multi-touch support and the two
//     navigation buttons, delivered as edge-triggered events
//   - Device discovery via hidapi enumeration with a /dev/hidraw scan
//     fallback
//
// # Thread Safety
//
// The Device struct is thread-safe. Image transmissions are serialized so a
// packet burst is never interleaved with another; input decoding state is
// owned exclusively by the monitoring goroutine.
package mxkeypad
