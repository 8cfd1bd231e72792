package mxkeypad

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"io"
	"os"
	"time"

	"github.com/disintegration/gift"
)

// ─── Kare Çözümleme ─────────────────────────────────────────────────────────────
//
// Cihaz yalnızca JPEG kabul ettiği için GIF animasyonları gönderilmeden önce
// kare kare çözümlenir: her kare, önceki karelerin üzerine bindirilip (GIF
// disposal kuralları uygulanarak) tam bir görüntü haline getirilir, hedef
// boyuta ölçeklenir ve JPEG olarak yeniden kodlanır. Çekirdek sürücü katmanı
// yalnızca sonuç kare dizisini tüketir.

// Frame, çözümlenmiş tek bir animasyon karesini temsil eder.
// Data alanı cihaza gönderilmeye hazır JPEG verisidir; Delay, karenin
// ekranda kalma süresidir. Üretildikten sonra değişmez.
type Frame struct {
	Data  []byte
	Delay time.Duration
}

// minFrameDelay, bir karenin minimum gösterim süresidir. Bazı GIF'ler 0
// gecikme bildirir; bu değerler cihazı boğmamak için alta sınırlanır.
const minFrameDelay = 20 * time.Millisecond

// DecodeGIF, GIF verisini hedef boyuta ölçeklenmiş JPEG karelerine çözümler.
//
//	frames, err := mxkeypad.DecodeGIF(gifData, mxkeypad.KeySize, mxkeypad.KeySize)
func DecodeGIF(data []byte, width, height int) ([]Frame, error) {
	return decodeGIFBytes(data, width, height, DefaultJPEGQuality)
}

// DecodeGIFFile, bir GIF dosyasını hedef boyuta ölçeklenmiş JPEG karelerine
// çözümler.
func DecodeGIFFile(path string, width, height int) ([]Frame, error) {
	return decodeGIFFile(path, width, height, DefaultJPEGQuality)
}

func decodeGIFBytes(data []byte, width, height, quality int) ([]Frame, error) {
	return decodeGIF(bytes.NewReader(data), width, height, quality)
}

func decodeGIFFile(path string, width, height, quality int) ([]Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("GIF dosyası açılamadı: %w", err)
	}
	defer f.Close()
	return decodeGIF(f, width, height, quality)
}

// decodeGIF, asıl çözümleme işini yapar: kareleri birleştirir (coalesce),
// ölçekler ve JPEG kodlar.
func decodeGIF(r io.Reader, width, height, quality int) ([]Frame, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}

	canvas := image.NewRGBA(bounds)
	resizer := gift.New(gift.Resize(width, height, gift.LanczosResampling))

	frames := make([]Frame, 0, len(g.Image))
	var restore *image.RGBA

	for i, src := range g.Image {
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			restore = image.NewRGBA(bounds)
			draw.Draw(restore, bounds, canvas, bounds.Min, draw.Src)
		}

		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)

		scaled := image.NewRGBA(resizer.Bounds(canvas.Bounds()))
		resizer.Draw(scaled, canvas)

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("kare %d JPEG kodlanamadı: %w", i, err)
		}

		delay := minFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			// GIF gecikmeleri saniyenin yüzde biri cinsindendir
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
			if delay < minFrameDelay {
				delay = minFrameDelay
			}
		}

		frames = append(frames, Frame{Data: buf.Bytes(), Delay: delay})

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if restore != nil {
				draw.Draw(canvas, bounds, restore, bounds.Min, draw.Src)
			}
		}
	}

	return frames, nil
}

// ─── Düz Renk Görseli ───────────────────────────────────────────────────────────

// solidJPEG, verilen boyutta tek renkli bir JPEG üretir.
// SetKeyColor bu çıktıyı normal görsel yükleme yolundan gönderir.
func solidJPEG(width, height int, r, g, b uint8, quality int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: r, G: g, B: b, A: 255}},
		image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
