package mxkeypad

import (
	"fmt"
)

// ─── Görsel Komutları ───────────────────────────────────────────────────────────

// SetKeyImage, verilen tuşun (0-8) LCD alanına bir JPEG görseli yazar.
// Görsel 118x118 piksel olmalıdır; cihaz ölçekleme yapmaz.
//
//	jpegData, _ := os.ReadFile("icon.jpg")
//	if err := dev.SetKeyImage(0, jpegData); err != nil {
//	    log.Fatal(err)
//	}
func (d *Device) SetKeyImage(index int, jpegData []byte) error {
	if index < 0 || index >= KeyCount {
		return ErrInvalidKeyIndex
	}
	if len(jpegData) == 0 {
		return ErrEmptyImage
	}
	return d.writeImage(KeyRect(index), jpegData)
}

// SetScreenImage, 9 tuşu ve aralarındaki boşlukları kaplayan tam ekran
// (434x434) bir JPEG görseli yazar. Tek aktarımla tüm ekranı güncellemek,
// 9 ayrı tuş güncellemesinden çok daha hızlıdır.
func (d *Device) SetScreenImage(jpegData []byte) error {
	if len(jpegData) == 0 {
		return ErrEmptyImage
	}
	return d.writeImage(ScreenRect(), jpegData)
}

// SetRawImage, ekranın istenen bölgesine bir JPEG görseli yazar.
// Koordinatlar piksel cinsindendir; geçerli bir dikdörtgen ve boş olmayan
// veri çağıranın sorumluluğundadır.
func (d *Device) SetRawImage(x, y, width, height uint16, jpegData []byte) error {
	if len(jpegData) == 0 {
		return ErrEmptyImage
	}
	return d.writeImage(Rect{X: x, Y: y, Width: width, Height: height}, jpegData)
}

// SetKeyColor, verilen tuşu düz bir renge boyar. Renk, cihazın beklediği
// formata uygun şekilde tek renkli bir JPEG olarak kodlanıp yüklenir.
//
//	err := dev.SetKeyColor(4, 255, 128, 0) // turuncu
func (d *Device) SetKeyColor(index int, r, g, b uint8) error {
	if index < 0 || index >= KeyCount {
		return ErrInvalidKeyIndex
	}
	if err := d.ensureInitialized(); err != nil {
		return err
	}

	jpegData, err := solidJPEG(KeySize, KeySize, r, g, b, d.opts.jpegQuality)
	if err != nil {
		return fmt.Errorf("renk görseli üretilemedi: %w", err)
	}
	return d.writeImage(KeyRect(index), jpegData)
}

// ─── GIF Animasyon Komutları ────────────────────────────────────────────────────

// SetKeyGif, verilen tuş üzerinde bir GIF animasyonu başlatır. GIF kareleri
// tuş boyutuna (118x118) ölçeklenip JPEG olarak kodlanır; kareler karenin
// kendi gecikmesiyle sırayla gösterilir. loop=true ise animasyon başa döner,
// değilse son kareden sonra kendiliğinden biter.
//
// Aynı tuşta çalışan önceki animasyon önce tamamen durdurulur. Çözümleme
// hatası veya sıfır kare durumunda animasyon başlatılmaz.
func (d *Device) SetKeyGif(index int, gifData []byte, loop bool) error {
	if index < 0 || index >= KeyCount {
		return ErrInvalidKeyIndex
	}
	if err := d.ensureInitialized(); err != nil {
		return err
	}

	frames, err := decodeGIFBytes(gifData, KeySize, KeySize, d.opts.jpegQuality)
	if err != nil {
		return fmt.Errorf("GIF çözümlenemedi: %w", err)
	}
	return d.startKeyAnimation(index, frames, loop)
}

// SetKeyGifFromFile, GIF dosyasını okuyup verilen tuş üzerinde animasyon
// olarak başlatır.
func (d *Device) SetKeyGifFromFile(index int, gifPath string, loop bool) error {
	if index < 0 || index >= KeyCount {
		return ErrInvalidKeyIndex
	}
	if err := d.ensureInitialized(); err != nil {
		return err
	}

	frames, err := decodeGIFFile(gifPath, KeySize, KeySize, d.opts.jpegQuality)
	if err != nil {
		return fmt.Errorf("GIF çözümlenemedi (%s): %w", gifPath, err)
	}
	return d.startKeyAnimation(index, frames, loop)
}

// SetScreenGif, tam ekran (434x434) bir GIF animasyonu başlatır.
// 9 ayrı tuş animasyonundan çok daha az kanal trafiği üretir.
func (d *Device) SetScreenGif(gifData []byte, loop bool) error {
	if err := d.ensureInitialized(); err != nil {
		return err
	}

	frames, err := decodeGIFBytes(gifData, ScreenWidth, ScreenHeight, d.opts.jpegQuality)
	if err != nil {
		return fmt.Errorf("GIF çözümlenemedi: %w", err)
	}
	return d.startScreenAnimation(frames, loop)
}

// SetScreenGifFromFile, GIF dosyasını okuyup tam ekran animasyon olarak
// başlatır.
func (d *Device) SetScreenGifFromFile(gifPath string, loop bool) error {
	if err := d.ensureInitialized(); err != nil {
		return err
	}

	frames, err := decodeGIFFile(gifPath, ScreenWidth, ScreenHeight, d.opts.jpegQuality)
	if err != nil {
		return fmt.Errorf("GIF çözümlenemedi (%s): %w", gifPath, err)
	}
	return d.startScreenAnimation(frames, loop)
}
