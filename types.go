package mxkeypad

import (
	"errors"
	"fmt"
	"time"
)

// ─── Protokol Sabitleri ─────────────────────────────────────────────────────────

const (
	// VendorID, Logitech'in USB vendor kimliğidir.
	VendorID = 0x046d

	// ProductID, MX Keypad cihazının USB product kimliğidir.
	ProductID = 0xc354

	// MaxPacketSize, tek bir HID yazma işleminde gönderilen paket boyutudur.
	// Her paket, içeriği ne olursa olsun bu boyuta sıfır byte ile doldurulur.
	MaxPacketSize = 4095

	// KeyCount, 3x3 ızgaradaki LCD tuş sayısıdır.
	KeyCount = 9

	// KeySize, tek bir LCD tuşunun piksel cinsinden kenar uzunluğudur.
	KeySize = 118

	// GapSize, iki komşu tuş arasındaki piksel boşluğudur.
	GapSize = 40

	// ScreenWidth ve ScreenHeight, tüm ekranı kaplayan görsel boyutudur.
	// 3 tuş + 2 boşluk: 118*3 + 40*2 = 434.
	ScreenWidth  = 434
	ScreenHeight = 434

	// firstHeaderLength, bir görsel aktarımının ilk paketindeki başlık uzunluğudur.
	// Format: [4B imza][1B sıra kontrol][6B geometri etiketi]
	//         [2B x][2B y][2B genişlik][2B yükseklik][1B sıfır][2B toplam uzunluk]
	// Çok byte'lı alanların tümü big-endian'dır.
	firstHeaderLength = 20

	// contHeaderLength, devam paketlerindeki başlık uzunluğudur.
	// Format: [4B imza][1B sıra kontrol]
	contHeaderLength = 5

	// initReportLength, başlatma raporlarının sabit uzunluğudur.
	initReportLength = 20

	// DefaultPollTimeout, izleme döngüsünün poll() bekleme süresidir.
	// Kısa tutulur ki durdurma isteği en geç bu süre içinde fark edilsin.
	DefaultPollTimeout = 100 * time.Millisecond

	// DefaultSettleDelay, başlatma raporlarının ardından beklenen süredir.
	DefaultSettleDelay = 10 * time.Millisecond

	// DefaultJPEGQuality, kütüphanenin ürettiği JPEG verilerinin kalitesidir
	// (GIF karelerinin yeniden kodlanması ve düz renk görselleri).
	DefaultJPEGQuality = 90

	// reportBufferSize, gelen HID raporları için okuma tamponu boyutudur.
	reportBufferSize = 256
)

// packetSignature, her görsel paketinin başındaki 4 byte'lık protokol imzasıdır.
var packetSignature = [4]byte{0x14, 0xff, 0x02, 0x2b}

// geometryTag, ilk paketin 5. byte'ından itibaren kopyalanan sabit geometri
// etiketidir. Son iki byte'ının üzerine x koordinatı yazılır.
var geometryTag = [6]byte{0x01, 0x00, 0x01, 0x00, 0x00, 0x00}

// initReports, oturum başlatılırken sırayla gönderilen iki sabit rapordur.
// İçerikleri cihaza ve firmware'e özgüdür; kalan byte'lar sıfırdır.
var initReports = [2][initReportLength]byte{
	{0x11, 0xff, 0x0b, 0x3b, 0x01, 0xa1, 0x03},
	{0x11, 0xff, 0x0b, 0x3b, 0x01, 0xa2, 0x03},
}

// ─── Navigasyon Tuş Kodları ─────────────────────────────────────────────────────

const (
	// ButtonNavLeft, sol navigasyon (P1) tuşunun kodudur.
	ButtonNavLeft uint8 = 0xa1

	// ButtonNavRight, sağ navigasyon (P2) tuşunun kodudur.
	ButtonNavRight uint8 = 0xa2
)

// ─── Yetenekler ─────────────────────────────────────────────────────────────────

// Capability, cihazın desteklediği özellikleri temsil eder.
// Yetenek kümesi NewDevice sırasında belirlenir ve sonradan değişmez.
type Capability int

const (
	// CapButtons, tuş basma/bırakma olaylarının okunabildiğini belirtir.
	// Her MX Keypad bu yeteneğe sahiptir.
	CapButtons Capability = iota

	// CapLCD, cihazda kullanılabilir bir LCD ekran bulunduğunu belirtir.
	CapLCD

	// CapImageUpload, LCD'ye görsel yüklenebildiğini belirtir.
	CapImageUpload
)

// String, Capability'nin okunabilir adını döner.
func (c Capability) String() string {
	switch c {
	case CapButtons:
		return "Buttons"
	case CapLCD:
		return "LCD"
	case CapImageUpload:
		return "ImageUpload"
	default:
		return fmt.Sprintf("Capability(%d)", int(c))
	}
}

// ─── Olay Tipleri ───────────────────────────────────────────────────────────────

// EventKind, Event yapısının hangi varyantı taşıdığını belirtir.
type EventKind int

const (
	// EventButtonPress, bir tuşa basıldığını belirtir.
	EventButtonPress EventKind = iota

	// EventButtonRelease, bir tuşun bırakıldığını belirtir.
	EventButtonRelease

	// EventRotation, döndürme hareketini belirtir. MX Keypad bu olayı
	// üretmez; tip, aynı callback arayüzünü paylaşan dialpad cihazları
	// için tanımlıdır.
	EventRotation
)

// String, EventKind'ın okunabilir adını döner.
func (k EventKind) String() string {
	switch k {
	case EventButtonPress:
		return "ButtonPress"
	case EventButtonRelease:
		return "ButtonRelease"
	case EventRotation:
		return "Rotation"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event, cihazdan gelen tek bir giriş olayını temsil eder.
// Kind alanına göre ilgili alanlar geçerlidir:
//
//   - EventButtonPress / EventButtonRelease: Button (ızgara için 0-8,
//     navigasyon için ButtonNavLeft/ButtonNavRight) ve Pressed.
//   - EventRotation: Delta (çentik sayısı) ve DeltaHighRes.
//
// Timestamp, milisaniye cinsinden monotonik bir zaman damgasıdır.
type Event struct {
	Kind         EventKind
	Button       uint8
	Pressed      bool
	Delta        int8
	DeltaHighRes int16
	Timestamp    int64
}

// String, olayın okunabilir temsilini döner.
func (e Event) String() string {
	switch e.Kind {
	case EventButtonPress, EventButtonRelease:
		return fmt.Sprintf("%s(0x%02x)", e.Kind, e.Button)
	case EventRotation:
		return fmt.Sprintf("Rotation(%+d)", e.Delta)
	default:
		return e.Kind.String()
	}
}

// EventCallback, her giriş olayı için çağrılan fonksiyondur.
// İzleme goroutine'i üzerinde senkron olarak çağrılır; uzun süren bir
// callback sonraki olayların işlenmesini geciktirir.
type EventCallback func(Event)

// ─── Hatalar ────────────────────────────────────────────────────────────────────

var (
	// ErrNotInitialized, Initialize() çağrılmadan görsel yazılmaya veya
	// izleme başlatılmaya çalışıldığında döner.
	ErrNotInitialized = errors.New("cihaz başlatılmadı, önce Initialize() çağırın")

	// ErrClosed, kapatılmış bir oturum üzerinde işlem yapıldığında döner.
	ErrClosed = errors.New("cihaz oturumu kapatıldı")

	// ErrInvalidKeyIndex, 0-8 aralığı dışında bir tuş indeksi verildiğinde döner.
	ErrInvalidKeyIndex = errors.New("geçersiz tuş indeksi (0-8 olmalı)")

	// ErrNoLCD, LCD kanalı bulunamayan bir cihazda görsel işlemi denendiğinde döner.
	ErrNoLCD = errors.New("cihazda kullanılabilir LCD kanalı yok")

	// ErrShortWrite, aktarılan toplam byte sayısının beklenen
	// paketSayısı × MaxPacketSize değerinden farklı olması durumudur.
	// Cihaz bozuk bir kare almış olabilir; güncelleme başarısız sayılır.
	ErrShortWrite = errors.New("eksik paket aktarımı")

	// ErrNoFrames, GIF çözümlemesi sıfır kare ürettiğinde döner.
	ErrNoFrames = errors.New("GIF hiç kare içermiyor")

	// ErrNoCallback, olay callback'i ayarlanmadan izleme başlatıldığında döner.
	ErrNoCallback = errors.New("olay callback'i ayarlanmadı, önce SetEventCallback() çağırın")

	// ErrEmptyImage, boş görsel verisiyle yazma denendiğinde döner.
	ErrEmptyImage = errors.New("görsel verisi boş")
)

// ─── Seçenek Yapıları ───────────────────────────────────────────────────────────

// DeviceOption, Device yapılandırma seçeneklerini tanımlar.
// Functional Options pattern kullanılır.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	pollTimeout time.Duration
	settleDelay time.Duration
	jpegQuality int
	logger      Logger
	openChannel channelOpener
}

func defaultDeviceOptions() deviceOptions {
	return deviceOptions{
		pollTimeout: DefaultPollTimeout,
		settleDelay: DefaultSettleDelay,
		jpegQuality: DefaultJPEGQuality,
		logger:      nil,
		openChannel: openHidraw,
	}
}

// WithPollTimeout, izleme döngüsünün poll bekleme süresini ayarlar.
// Daha kısa süre durdurma isteklerine daha hızlı tepki verir ancak
// CPU kullanımını artırır.
func WithPollTimeout(d time.Duration) DeviceOption {
	return func(o *deviceOptions) {
		o.pollTimeout = d
	}
}

// WithSettleDelay, başlatma raporları arasındaki bekleme süresini ayarlar.
func WithSettleDelay(d time.Duration) DeviceOption {
	return func(o *deviceOptions) {
		o.settleDelay = d
	}
}

// WithJPEGQuality, GIF kareleri ve düz renk görselleri için üretilen
// JPEG verilerinin kalitesini ayarlar (1-100).
func WithJPEGQuality(q int) DeviceOption {
	return func(o *deviceOptions) {
		o.jpegQuality = q
	}
}

// WithLogger, özel bir loglama arayüzü ayarlar.
// Varsayılan olarak loglama devre dışıdır.
func WithLogger(l Logger) DeviceOption {
	return func(o *deviceOptions) {
		o.logger = l
	}
}

// withChannelOpener, kanal açma fonksiyonunu değiştirir. Testlerin sahte
// kanal enjekte etmesi için kullanılır.
func withChannelOpener(fn channelOpener) DeviceOption {
	return func(o *deviceOptions) {
		o.openChannel = fn
	}
}

// ─── Logger Arayüzü ─────────────────────────────────────────────────────────────

// Logger, kütüphanenin loglama arayüzüdür.
// stdlib log paketi veya zerolog/zap gibi kütüphanelerle uyumludur.
type Logger interface {
	// Printf, formatlanmış bir log mesajı yazar.
	Printf(format string, v ...interface{})
}
