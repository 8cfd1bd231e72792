package mxkeypad

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Device, bir MX Keypad cihazıyla hidraw oturumunu yöneten ana yapıdır.
// Thread-safe olarak tasarlanmıştır: animasyon işçileri ve çağıranın kendi
// goroutine'i aynı anda görsel yazabilir; aktarımlar writeMu ile serileştirilir.
//
// Kullanım:
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
//	err = dev.SetKeyImage(0, jpegData)
type Device struct {
	// path, hidraw cihaz düğümünün yoludur (ör: /dev/hidraw3).
	path string

	// guid, bu oturum için benzersiz kimliktir; log satırlarında kullanılır.
	guid string

	// opts, cihaz yapılandırma seçenekleridir.
	opts deviceOptions

	// caps, NewDevice sırasında belirlenen ve sonradan değişmeyen
	// yetenek kümesidir.
	caps []Capability

	// mu, oturum durumu (kanal, başlatma, callback, izleme) için mutex'tir.
	mu sync.Mutex

	// writeMu, paket dizisi aktarımları için mutex'tir. Bir görsel
	// güncellemesinin tüm paketleri tek parça halinde gönderilir; iki
	// güncelleme kanal üzerinde asla iç içe geçmez.
	writeMu sync.Mutex

	// ch, görsel yazma kanalıdır (açık/kapalı).
	ch channel

	// initialized, başlatma dizisinin gönderildiğini belirtir.
	initialized bool

	// closed, oturumun kapatıldığını belirtir.
	closed bool

	// animMu, animasyon kayıtları için mutex'tir.
	animMu     sync.Mutex
	keyAnims   map[int]*animation
	screenAnim *animation

	// callback, kayıtlı olay fonksiyonudur (mu ile korunur).
	callback EventCallback

	// monitorStop/monitorDone, izleme goroutine'inin yaşam döngüsünü yönetir.
	monitorStop chan struct{}
	monitorDone chan struct{}
}

// NewDevice, verilen hidraw yolu için yeni bir Device nesnesi oluşturur.
// Kanal açılabilirliği burada bir kez yoklanır ve yetenek kümesi buna göre
// sabitlenir; başlatma dizisi henüz gönderilmez, Initialize() çağrılmalıdır.
//
//	// Basit kullanım
//	dev := mxkeypad.NewDevice("/dev/hidraw3")
//
//	// Seçeneklerle
//	dev := mxkeypad.NewDevice("/dev/hidraw3",
//	    mxkeypad.WithLogger(log.Default()),
//	    mxkeypad.WithPollTimeout(50*time.Millisecond),
//	)
func NewDevice(path string, options ...DeviceOption) *Device {
	opts := defaultDeviceOptions()
	for _, opt := range options {
		opt(&opts)
	}

	d := &Device{
		path:     path,
		guid:     uuid.New().String(),
		opts:     opts,
		caps:     []Capability{CapButtons},
		keyAnims: make(map[int]*animation),
	}

	// Yetenek yoklaması: kanal açılabiliyorsa LCD ve görsel yükleme var.
	if ch, err := opts.openChannel(path); err == nil {
		ch.close()
		d.caps = append(d.caps, CapLCD, CapImageUpload)
	} else {
		d.logf("LCD kanalı yoklaması başarısız: %v", err)
	}

	return d
}

// Path, cihazın hidraw yolunu döner.
func (d *Device) Path() string {
	return d.path
}

// GUID, bu oturumun benzersiz kimliğini döner.
func (d *Device) GUID() string {
	return d.guid
}

// HasCapability, cihazın verilen yeteneğe sahip olup olmadığını döner.
func (d *Device) HasCapability(want Capability) bool {
	for _, c := range d.caps {
		if c == want {
			return true
		}
	}
	return false
}

// Capabilities, yetenek kümesinin bir kopyasını döner.
func (d *Device) Capabilities() []Capability {
	caps := make([]Capability, len(d.caps))
	copy(caps, d.caps)
	return caps
}

// ─── Oturum Yaşam Döngüsü ───────────────────────────────────────────────────────

// Initialize, görsel kanalını açar ve iki sabit başlatma raporunu aralarında
// kısa bir bekleme ile gönderir. İdempotenttir: başlatılmış bir oturumda
// ikinci çağrı hiçbir şey yapmadan başarı döner.
func (d *Device) Initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.initialized {
		return nil
	}
	if !d.HasCapability(CapLCD) {
		return ErrNoLCD
	}

	ch, err := d.opts.openChannel(d.path)
	if err != nil {
		return fmt.Errorf("görsel kanalı açılamadı: %w", err)
	}

	for i := range initReports {
		report := initReports[i]
		if _, err := ch.writev([][]byte{report[:]}); err != nil {
			ch.close()
			return fmt.Errorf("başlatma raporu %d gönderilemedi: %w", i+1, err)
		}
		time.Sleep(d.opts.settleDelay)
	}

	d.ch = ch
	d.initialized = true
	d.logf("oturum başlatıldı (GUID: %s)", d.guid)
	return nil
}

// Close, oturumu güvenli bir şekilde kapatır. Sıralama önemlidir: önce tüm
// animasyonlar, sonra izleme durdurulur, en son kanal kapatılır. Böylece
// hiçbir işçi kapalı kanala dokunmaz.
func (d *Device) Close() error {
	d.StopAllAnimations()
	d.StopMonitoring()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.initialized = false

	if d.ch != nil {
		err := d.ch.close()
		d.ch = nil
		if err != nil {
			return fmt.Errorf("kanal kapatılamadı: %w", err)
		}
	}
	d.logf("oturum kapatıldı")
	return nil
}

// IsInitialized, başlatma dizisinin gönderilmiş olup olmadığını döner.
func (d *Device) IsInitialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

// ensureInitialized, oturumun kullanılabilir durumda olduğunu kontrol eder.
func (d *Device) ensureInitialized() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	if !d.initialized {
		return ErrNotInitialized
	}
	return nil
}

// ─── Kanal Yazıcısı ─────────────────────────────────────────────────────────────

// writePackets, bir görsel güncellemesinin paket dizisini tek bir atomik
// aktarım olarak gönderir. Önce non-blocking scatter write denenir; kernel
// "şu an yazılamaz" derse tüm dizi bir kez blocking modda yeniden yazılır.
//
// Başarı ölçütü katıdır: kabul edilen toplam byte sayısı
// paketSayısı × MaxPacketSize olmalıdır. Kısmi aktarım ErrShortWrite ile
// başarısız sayılır ve tekrarlanmaz.
func (d *Device) writePackets(packets [][]byte) error {
	defer releasePackets(packets)

	if len(packets) == 0 {
		return ErrEmptyImage
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()

	d.mu.Lock()
	ch := d.ch
	ready := d.initialized && !d.closed
	d.mu.Unlock()

	if !ready || ch == nil {
		return ErrNotInitialized
	}

	expected := len(packets) * MaxPacketSize

	if err := ch.setNonblock(true); err != nil {
		return fmt.Errorf("non-blocking moda geçilemedi: %w", err)
	}
	written, err := ch.writev(packets)
	if berr := ch.setNonblock(false); berr != nil {
		d.logf("blocking moda dönülemedi: %v", berr)
	}

	if err != nil {
		if !isWouldBlock(err) {
			return fmt.Errorf("paket dizisi yazılamadı: %w", err)
		}
		// Kernel tamponu doluydu; tüm diziyi blocking modda tekrar dene.
		written, err = ch.writev(packets)
		if err != nil {
			return fmt.Errorf("paket dizisi yazılamadı (blocking): %w", err)
		}
	}

	if written != expected {
		return fmt.Errorf("%w: %d/%d byte aktarıldı", ErrShortWrite, written, expected)
	}
	return nil
}

// writeImage, verilen dikdörtgene bir JPEG verisini paketleyip aktarır.
func (d *Device) writeImage(r Rect, jpegData []byte) error {
	if err := d.ensureInitialized(); err != nil {
		return err
	}
	return d.writePackets(buildImagePackets(r, jpegData))
}

// ─── Dahili Yardımcılar ─────────────────────────────────────────────────────────

// logf, yapılandırılmış logger varsa mesaj yazar.
func (d *Device) logf(format string, v ...interface{}) {
	if d.opts.logger != nil {
		d.opts.logger.Printf("[mxkeypad] "+format, v...)
	}
}
