package mxkeypad

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestPacketCount(t *testing.T) {
	firstCap := MaxPacketSize - firstHeaderLength // 4075
	contCap := MaxPacketSize - contHeaderLength   // 4090

	cases := []struct {
		payloadLen int
		want       int
	}{
		{0, 1},
		{1, 1},
		{firstCap, 1},
		{firstCap + 1, 2},
		{firstCap + contCap, 2},
		{firstCap + contCap + 1, 3},
		{100000, 1 + (100000-firstCap+contCap-1)/contCap},
	}
	for _, tc := range cases {
		if got := packetCount(tc.payloadLen); got != tc.want {
			t.Errorf("packetCount(%d) = %d, %d bekleniyordu", tc.payloadLen, got, tc.want)
		}
	}
}

func TestSeqControlByte(t *testing.T) {
	cases := []struct {
		part        int
		first, last bool
		want        byte
	}{
		{1, true, true, 0xe1},  // tek paketlik aktarım
		{1, true, false, 0xa1}, // çok paketlinin ilki
		{2, false, false, 0x22},
		{3, false, true, 0x63},
	}
	for _, tc := range cases {
		if got := seqControlByte(tc.part, tc.first, tc.last); got != tc.want {
			t.Errorf("seqControlByte(%d, %v, %v) = %02x, %02x bekleniyordu",
				tc.part, tc.first, tc.last, got, tc.want)
		}
	}
}

// reassemble, paket dizisinden taşınan veriyi geri çıkarır ve yol üstünde
// imza ile sıra byte'larını doğrular.
func reassemble(t *testing.T, packets [][]byte, total int) []byte {
	t.Helper()

	var payload []byte
	for i, pkt := range packets {
		if len(pkt) != MaxPacketSize {
			t.Fatalf("paket %d boyutu %d, %d bekleniyordu", i, len(pkt), MaxPacketSize)
		}
		if !bytes.Equal(pkt[:4], packetSignature[:]) {
			t.Fatalf("paket %d imzası yanlış: % x", i, pkt[:4])
		}

		seq := pkt[4]
		if got := int(seq & 0x1f); got != i+1 {
			t.Errorf("paket %d parça numarası %d", i, got)
		}
		if first := seq&0x80 != 0; first != (i == 0) {
			t.Errorf("paket %d ilk-paket biti yanlış: %02x", i, seq)
		}
		if last := seq&0x40 != 0; last != (i == len(packets)-1) {
			t.Errorf("paket %d son-paket biti yanlış: %02x", i, seq)
		}

		header := contHeaderLength
		if i == 0 {
			header = firstHeaderLength
		}
		n := total - len(payload)
		if room := MaxPacketSize - header; n > room {
			n = room
		}
		payload = append(payload, pkt[header:header+n]...)

		// veri sonrası her byte sıfır olmalı
		for _, b := range pkt[header+n:] {
			if b != 0 {
				t.Fatalf("paket %d dolgusu sıfır değil", i)
			}
		}
	}
	return payload
}

func TestBuildImagePacketsSingle(t *testing.T) {
	payload := bytes.Repeat([]byte{0x5a}, 100)
	r := Rect{X: 23, Y: 6, Width: 118, Height: 118}

	packets := buildImagePackets(r, payload)
	if len(packets) != 1 {
		t.Fatalf("%d paket üretildi, 1 bekleniyordu", len(packets))
	}
	if got := reassemble(t, packets, len(payload)); !bytes.Equal(got, payload) {
		t.Error("taşınan veri orijinalle eşleşmiyor")
	}

	first := packets[0]
	if got := binary.BigEndian.Uint16(first[9:11]); got != r.X {
		t.Errorf("x = %d", got)
	}
	if got := binary.BigEndian.Uint16(first[11:13]); got != r.Y {
		t.Errorf("y = %d", got)
	}
	if got := binary.BigEndian.Uint16(first[13:15]); got != r.Width {
		t.Errorf("genişlik = %d", got)
	}
	if got := binary.BigEndian.Uint16(first[15:17]); got != r.Height {
		t.Errorf("yükseklik = %d", got)
	}
	if first[17] != 0 {
		t.Error("17. byte sıfır olmalı")
	}
	if got := binary.BigEndian.Uint16(first[18:20]); got != uint16(len(payload)) {
		t.Errorf("uzunluk alanı = %d", got)
	}
	// geometri etiketinin sabit kısmı
	if first[5] != 0x01 || first[6] != 0x00 || first[7] != 0x01 || first[8] != 0x00 {
		t.Errorf("geometri etiketi yanlış: % x", first[5:9])
	}
}

func TestBuildImagePacketsMulti(t *testing.T) {
	for _, size := range []int{4075, 4076, 12000, 40000} {
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(i * 7)
		}

		packets := buildImagePackets(ScreenRect(), payload)
		if got, want := len(packets), packetCount(size); got != want {
			t.Fatalf("boyut %d: %d paket, %d bekleniyordu", size, got, want)
		}
		if got := reassemble(t, packets, size); !bytes.Equal(got, payload) {
			t.Errorf("boyut %d: taşınan veri orijinalle eşleşmiyor", size)
		}
	}
}

func TestBuildImagePacketsEmpty(t *testing.T) {
	packets := buildImagePackets(KeyRect(0), nil)
	if len(packets) != 1 {
		t.Fatalf("%d paket üretildi, 1 bekleniyordu", len(packets))
	}
	seq := packets[0][4]
	if seq&0x80 == 0 || seq&0x40 == 0 {
		t.Errorf("boş aktarım hem ilk hem son olmalı: %02x", seq)
	}
	if got := binary.BigEndian.Uint16(packets[0][18:20]); got != 0 {
		t.Errorf("uzunluk alanı = %d, 0 bekleniyordu", got)
	}
}

func TestKeyRectGrid(t *testing.T) {
	for index := 0; index < KeyCount; index++ {
		row := index / 3
		col := index % 3
		r := KeyRect(index)

		wantX := uint16(23 + col*158)
		wantY := uint16(6 + row*158)
		if r.X != wantX || r.Y != wantY {
			t.Errorf("KeyRect(%d) = (%d,%d), (%d,%d) bekleniyordu", index, r.X, r.Y, wantX, wantY)
		}
		if r.Width != KeySize || r.Height != KeySize {
			t.Errorf("KeyRect(%d) boyutu %dx%d", index, r.Width, r.Height)
		}
	}

	s := ScreenRect()
	if s.X != 23 || s.Y != 6 || s.Width != ScreenWidth || s.Height != ScreenHeight {
		t.Errorf("ScreenRect() = %+v", s)
	}
}

func TestParseNavReport(t *testing.T) {
	if action, code, ok := parseNavReport([]byte{0x11, 0xff, 0x0b, 0x00, 0x01, 0xa1}); !ok || action != 0x01 || code != 0xa1 {
		t.Errorf("basma raporu ayrıştırılamadı: action=%02x code=%02x ok=%v", action, code, ok)
	}
	if action, _, ok := parseNavReport([]byte{0x11, 0xff, 0x0b, 0x00, 0x00, 0x00}); !ok || action != 0x00 {
		t.Error("bırakma raporu ayrıştırılamadı")
	}
	if _, _, ok := parseNavReport([]byte{0x13, 0xff, 0x02, 0x00, 0x00, 0x01}); ok {
		t.Error("ızgara raporu navigasyon sanıldı")
	}
	if _, _, ok := parseNavReport([]byte{0x11, 0xff, 0x0b}); ok {
		t.Error("kısa rapor kabul edilmemeli")
	}
}

func TestParseGridReport(t *testing.T) {
	report := []byte{0x13, 0xff, 0x02, 0x00, 0x00, 0x01, 0x01, 0x05, 0x09, 0x00}
	pressed, ok := parseGridReport(report)
	if !ok {
		t.Fatal("ızgara raporu tanınmadı")
	}
	want := []uint8{0, 4, 8}
	if len(pressed) != len(want) {
		t.Fatalf("pressed = %v, %v bekleniyordu", pressed, want)
	}
	for i := range want {
		if pressed[i] != want[i] {
			t.Fatalf("pressed = %v, %v bekleniyordu", pressed, want)
		}
	}

	// boş ızgara: veri alanı hemen sıfırla başlar
	if pressed, ok := parseGridReport([]byte{0x13, 0xff, 0x02, 0x00, 0x00, 0x01, 0x00}); !ok || len(pressed) != 0 {
		t.Errorf("boş ızgara raporu: pressed=%v ok=%v", pressed, ok)
	}

	// 5. byte 0x01 değilse rapor tanınmaz
	if _, ok := parseGridReport([]byte{0x13, 0xff, 0x02, 0x00, 0x00, 0x02, 0x01, 0x00}); ok {
		t.Error("geçersiz işaret byte'ı kabul edilmemeli")
	}
}
