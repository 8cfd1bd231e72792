package mxkeypad

import (
	"fmt"
	"time"
)

// ─── Giriş İzleme ───────────────────────────────────────────────────────────────
//
// İzleme, kendi okuma kanalını açan tek bir arka plan goroutine'idir.
// Döngü, poll ile kısa aralıklarla veri bekler; gelen her ham rapor
// reportDecoder'a verilir ve üretilen olaylar kayıtlı callback'e aynı
// goroutine üzerinde senkron olarak iletilir.
//
// Çözücü durumu (basılı tuş kümesi, son navigasyon tuşu) yalnızca izleme
// goroutine'ine aittir; başka hiçbir yerden değiştirilmez.

// monotonicStart, olay zaman damgalarının referans noktasıdır.
var monotonicStart = time.Now()

// nowMillis, milisaniye cinsinden monotonik zaman damgası üretir.
func nowMillis() int64 {
	return time.Since(monotonicStart).Milliseconds()
}

// ─── Rapor Çözücü ───────────────────────────────────────────────────────────────

// reportDecoder, ham HID raporlarını kenar tetiklemeli basma/bırakma
// olaylarına dönüştürür. Raporlar durumsaldır: ızgara raporları o anda
// basılı TÜM tuşları taşır, navigasyon bırakma raporları ise tuş kodunu
// hiç taşımaz. Çözücü bu yüzden raporlar arası durum tutar.
type reportDecoder struct {
	// pressed, şu anda basılı olan ızgara tuşu indeksleridir (0-8).
	pressed map[uint8]bool

	// lastNav, en son basılan navigasyon tuşunun kodudur (0 = yok).
	// Bırakma raporu kod alanı taşımadığı için burada hatırlanır.
	lastNav uint8
}

func newReportDecoder() *reportDecoder {
	return &reportDecoder{pressed: make(map[uint8]bool)}
}

// decode, tek bir ham raporu işler ve üretilen olayları döner.
// Tanınmayan rapor şekilleri hatasız yok sayılır (boş dilim döner).
func (rd *reportDecoder) decode(report []byte, ts int64) []Event {
	// Navigasyon raporu önce denenir. Navigasyon şekilli bir rapor asla
	// ızgara raporu olarak da yorumlanmaz: veri kısmı bayat ızgara
	// byte'ları içerebilir.
	if action, code, ok := parseNavReport(report); ok {
		switch {
		case action == 0x01 && (code == ButtonNavLeft || code == ButtonNavRight):
			rd.lastNav = code
			return []Event{{
				Kind:      EventButtonPress,
				Button:    code,
				Pressed:   true,
				Timestamp: ts,
			}}

		case action == 0x00 && rd.lastNav != 0:
			released := rd.lastNav
			rd.lastNav = 0
			return []Event{{
				Kind:      EventButtonRelease,
				Button:    released,
				Pressed:   false,
				Timestamp: ts,
			}}
		}
		return nil
	}

	codes, ok := parseGridReport(report)
	if !ok {
		return nil
	}

	current := make(map[uint8]bool, len(codes))
	for _, c := range codes {
		current[c] = true
	}

	var events []Event

	// Önce yeni basmalar, sonra bırakmalar; her ikisi de artan indeks
	// sırasında. Böylece çoklu dokunma semantiği basit kalır.
	for c := uint8(0); c < KeyCount; c++ {
		if current[c] && !rd.pressed[c] {
			events = append(events, Event{
				Kind:      EventButtonPress,
				Button:    c,
				Pressed:   true,
				Timestamp: ts,
			})
		}
	}
	for c := uint8(0); c < KeyCount; c++ {
		if rd.pressed[c] && !current[c] {
			events = append(events, Event{
				Kind:      EventButtonRelease,
				Button:    c,
				Pressed:   false,
				Timestamp: ts,
			})
		}
	}

	rd.pressed = current
	return events
}

// ─── İzleme Kontrolü ────────────────────────────────────────────────────────────

// SetEventCallback, giriş olayları için callback fonksiyonunu kaydeder.
// İzleme başlatılmadan önce çağrılmalıdır.
func (d *Device) SetEventCallback(fn EventCallback) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.callback = fn
}

// StartMonitoring, giriş raporlarını okuyan arka plan goroutine'ini başlatır.
// Okuma için ayrı bir kanal örneği açılır; yazıcılarla çekişmez.
// İzleme zaten çalışıyorsa hiçbir şey yapmadan başarı döner.
func (d *Device) StartMonitoring() error {
	d.mu.Lock()

	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	if !d.initialized {
		d.mu.Unlock()
		return ErrNotInitialized
	}
	if d.callback == nil {
		d.mu.Unlock()
		return ErrNoCallback
	}
	if d.monitorDone != nil {
		select {
		case <-d.monitorDone:
			// önceki döngü kendiliğinden bitmiş; yeniden başlatılabilir
		default:
			d.mu.Unlock()
			return nil
		}
	}

	ch, err := d.opts.openChannel(d.path)
	if err != nil {
		d.mu.Unlock()
		return fmt.Errorf("izleme kanalı açılamadı: %w", err)
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	d.monitorStop = stop
	d.monitorDone = done
	callback := d.callback
	timeout := d.opts.pollTimeout
	d.mu.Unlock()

	go d.monitorLoop(ch, callback, stop, done, timeout)
	d.logf("izleme başladı")
	return nil
}

// monitorLoop, izleme goroutine'inin ana döngüsüdür.
func (d *Device) monitorLoop(ch channel, callback EventCallback, stop, done chan struct{}, timeout time.Duration) {
	defer close(done)
	defer ch.close()

	decoder := newReportDecoder()
	buf := make([]byte, reportBufferSize)

	for {
		select {
		case <-stop:
			return
		default:
		}

		n, err := ch.read(buf, timeout)
		if err != nil {
			d.logf("izleme okuma hatası, döngü sonlanıyor: %v", err)
			return
		}
		if n <= 0 {
			// zaman aşımı; durdurma isteği döngü başında kontrol edilir
			continue
		}

		for _, ev := range decoder.decode(buf[:n], nowMillis()) {
			callback(ev)
		}
	}
}

// StopMonitoring, izleme goroutine'ini durdurur ve çıkışını bekler.
// İzleme çalışmıyorsa hiçbir şey yapmaz.
func (d *Device) StopMonitoring() {
	d.mu.Lock()
	stop := d.monitorStop
	done := d.monitorDone
	d.monitorStop = nil
	d.monitorDone = nil
	d.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
	d.logf("izleme durduruldu")
}

// IsMonitoring, izleme döngüsünün halen çalışıp çalışmadığını döner.
func (d *Device) IsMonitoring() bool {
	d.mu.Lock()
	done := d.monitorDone
	d.mu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}
