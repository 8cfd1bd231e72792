package mxkeypad

import (
	"encoding/binary"
	"sync"
)

// ─── Paket Oluşturma ────────────────────────────────────────────────────────────
//
// Bu dosya, MX Keypad görsel yükleme protokolü için düşük seviyeli paket
// oluşturma fonksiyonlarını içerir. Bir JPEG verisi, MaxPacketSize boyutlu
// paketler dizisine bölünür ve tek bir writev ile cihaza aktarılır.
//
// İlk Paket Formatı (20 byte başlık + veri):
//
//	[0-3]   imza = 14 ff 02 2b
//	[4]     sıra kontrol byte'ı (aşağıya bakın)
//	[5-8]   geometri etiketi = 01 00 01 00
//	[9-10]  x (BE)
//	[11-12] y (BE)
//	[13-14] genişlik (BE)
//	[15-16] yükseklik (BE)
//	[17]    sıfır
//	[18-19] toplam veri uzunluğu (BE), dolgu hariç gerçek boyut
//
// Devam Paketi Formatı (5 byte başlık + veri):
//
//	[0-3] imza = 14 ff 02 2b
//	[4]   sıra kontrol byte'ı
//
// Her paket MaxPacketSize boyutuna sıfır byte ile doldurulur.

// Rect, ekran üzerinde bir hedef dikdörtgeni temsil eder.
// Koordinatlar piksel cinsindendir; (0,0) ekranın sol üst köşesidir.
type Rect struct {
	X      uint16
	Y      uint16
	Width  uint16
	Height uint16
}

// KeyRect, verilen tuş indeksinin (0-8) ekran üzerindeki dikdörtgenini döner.
// Tuşlar 3x3 ızgarada dizilidir: satır = index/3, sütun = index%3.
func KeyRect(index int) Rect {
	row := index / 3
	col := index % 3
	return Rect{
		X:      uint16(23 + col*(KeySize+GapSize)),
		Y:      uint16(6 + row*(KeySize+GapSize)),
		Width:  KeySize,
		Height: KeySize,
	}
}

// ScreenRect, 9 tuşu ve aralarındaki boşlukları kaplayan tam ekran
// dikdörtgenini döner. Başlangıç noktası 0 numaralı tuşla aynıdır.
func ScreenRect() Rect {
	return Rect{X: 23, Y: 6, Width: ScreenWidth, Height: ScreenHeight}
}

// ─── Paket Tampon Havuzu ────────────────────────────────────────────────────────

// packetPool, MaxPacketSize boyutlu paket tamponlarını geri dönüştürür.
// Animasyon döngüleri saniyede onlarca güncelleme üretebildiği için
// paket başına yeni tahsis yapılmaz. Bir tamponun sahipliği, writev
// tamamlanana kadar onu alan çağrıdadır; aktarım sonrası releasePackets
// ile havuza iade edilir.
var packetPool = sync.Pool{
	New: func() interface{} {
		return make([]byte, MaxPacketSize)
	},
}

// acquirePacket, havuzdan sıfırlanmış bir paket tamponu alır.
func acquirePacket() []byte {
	pkt := packetPool.Get().([]byte)
	clear(pkt)
	return pkt
}

// releasePackets, aktarımı tamamlanan paket tamponlarını havuza iade eder.
func releasePackets(packets [][]byte) {
	for _, pkt := range packets {
		packetPool.Put(pkt) //nolint:staticcheck // sabit boyutlu tampon
	}
}

// ─── Sıra Kontrol Byte'ı ────────────────────────────────────────────────────────

// seqControlByte, paketin sıra kontrol byte'ını üretir.
//
//	değer = (parça | 0x20)
//	ilk paket ise  |= 0x80
//	son paket ise  |= 0x40
//
// Parça numarası 1'den başlar. Tek paketlik bir aktarımda 0x80 ve 0x40
// bitleri aynı anda set edilir.
func seqControlByte(part int, first, last bool) byte {
	value := byte(part) | 0x20
	if first {
		value |= 0x80
	}
	if last {
		value |= 0x40
	}
	return value
}

// packetCount, verilen veri boyutu için üretilecek paket sayısını döner.
func packetCount(payloadLen int) int {
	count := 1
	if payloadLen > MaxPacketSize-firstHeaderLength {
		remaining := payloadLen - (MaxPacketSize - firstHeaderLength)
		perPacket := MaxPacketSize - contHeaderLength
		count += (remaining + perPacket - 1) / perPacket
	}
	return count
}

// buildImagePackets, verilen hedef dikdörtgen ve JPEG verisi için protokol
// paket dizisini üretir. Saf bir dönüşümdür; bu katmanda hata oluşmaz.
// Boş veri, yalnızca başlık taşıyan tek paketlik bir dizi üretir.
//
// Dönen tamponlar havuzdan alınmıştır; aktarım sonrası releasePackets
// ile iade edilmelidir.
func buildImagePackets(r Rect, payload []byte) [][]byte {
	total := len(payload)
	packets := make([][]byte, 0, packetCount(total))

	// İlk paket: 20 byte başlık + veri
	first := acquirePacket()
	copy(first, packetSignature[:])
	first[4] = seqControlByte(1, true, total <= MaxPacketSize-firstHeaderLength)
	copy(first[5:], geometryTag[:])
	binary.BigEndian.PutUint16(first[9:11], r.X)
	binary.BigEndian.PutUint16(first[11:13], r.Y)
	binary.BigEndian.PutUint16(first[13:15], r.Width)
	binary.BigEndian.PutUint16(first[15:17], r.Height)
	binary.BigEndian.PutUint16(first[18:20], uint16(total))

	offset := copy(first[firstHeaderLength:], payload)
	packets = append(packets, first)

	// Devam paketleri: 5 byte başlık + veri
	part := 2
	for offset < total {
		pkt := acquirePacket()
		copy(pkt, packetSignature[:])
		n := copy(pkt[contHeaderLength:], payload[offset:])
		offset += n
		pkt[4] = seqControlByte(part, false, offset == total)
		packets = append(packets, pkt)
		part++
	}

	return packets
}

// ─── Gelen Rapor Ayrıştırma ─────────────────────────────────────────────────────
//
// Cihaz, aynı hidraw kanalından iki farklı şekilde rapor gönderir:
//
//   - Navigasyon raporu: 11 ff 0b 00 [aksiyon] [kod] ...
//     aksiyon=0x01 basma (kod: 0xa1/0xa2), aksiyon=0x00 bırakma (kod alanı boş).
//   - Izgara raporu: 13 ff 02 00 xx 01 [kodlar...] 00 ...
//     6. byte'tan itibaren basılı TÜM tuş kodları (1-9), sıfır ile sonlanır.
//
// Navigasyon raporlarının veri kısmı bayat ızgara byte'ları içerebilir;
// bu yüzden navigasyon olarak tanınan bir rapor asla ızgara raporu olarak
// da yorumlanmaz. Tanınmayan şekiller sessizce yok sayılır.

// parseNavReport, navigasyon şekilli bir raporu ayrıştırır.
// ok=false, raporun navigasyon şeklinde olmadığını belirtir.
func parseNavReport(report []byte) (action, code uint8, ok bool) {
	if len(report) < 6 {
		return 0, 0, false
	}
	if report[0] != 0x11 || report[1] != 0xff || report[2] != 0x0b || report[3] != 0x00 {
		return 0, 0, false
	}
	return report[4], report[5], true
}

// parseGridReport, ızgara şekilli bir raporu ayrıştırır ve bu raporda basılı
// görünen tuşların 0 bazlı indekslerini döner. Rapordaki ham kodlar 1-9
// aralığındadır; aralık dışı kodlar atlanır, sıfır byte'ı listeyi sonlandırır.
func parseGridReport(report []byte) (pressed []uint8, ok bool) {
	if len(report) < 7 {
		return nil, false
	}
	if report[0] != 0x13 || report[1] != 0xff || report[2] != 0x02 ||
		report[3] != 0x00 || report[5] != 0x01 {
		return nil, false
	}

	for i := 6; i < len(report); i++ {
		raw := report[i]
		if raw == 0 {
			break
		}
		if raw >= 1 && raw <= 9 {
			pressed = append(pressed, raw-1)
		}
	}
	return pressed, true
}
