package mxkeypad

import (
	"time"
)

// ─── Animasyon Zamanlayıcısı ────────────────────────────────────────────────────
//
// Her animasyon hedefi (tek bir tuş veya tam ekran) için en fazla bir arka
// plan işçisi çalışır. İşçi, kare dizisini zamanlanmış bir döngüde cihaza
// yazar; durdurma kooperatiftir ve işçi katılımı (join) beklenmeden dönülmez.
//
// Yaşam döngüsü: Idle → Running → (Stopping) → Idle. Aynı hedefe yeni bir
// animasyon başlatmak, öncekini tamamen durdurup bekledikten sonra gerçekleşir.

// maxAnimationWriteFailures, bir animasyon işçisinin kendini sonlandırmadan
// önce tolere edeceği ardışık yazma hatası sayısıdır. Takılı bir kanal
// sonsuza dek döngüde kalmak yerine görevi bitirir.
const maxAnimationWriteFailures = 3

// animation, tek bir hedefe kare dizisi oynatan arka plan işçisini temsil eder.
type animation struct {
	frames []Frame
	loop   bool

	// stop kapatıldığında işçi en geç bir kare gecikmesi içinde çıkar;
	// done, işçi tamamen çıktığında kapanır.
	stop chan struct{}
	done chan struct{}
}

// stopAndJoin, işçiye durma sinyali gönderir ve çıkışını bekler.
// Kendiliğinden bitmiş (döngüsüz) bir animasyonda da güvenle çağrılabilir.
func (a *animation) stopAndJoin() {
	select {
	case <-a.stop:
		// sinyal zaten gönderilmiş
	default:
		close(a.stop)
	}
	<-a.done
}

// spawnAnimation, verilen dikdörtgen için bir animasyon işçisi başlatır.
func (d *Device) spawnAnimation(r Rect, frames []Frame, loop bool) *animation {
	a := &animation{
		frames: frames,
		loop:   loop,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go d.runAnimation(a, r)
	return a
}

// runAnimation, animasyon işçisinin ana döngüsüdür: kareyi göster, karenin
// süresi kadar bekle, ilerle. Bekleme sırasında durdurma sinyali seçilir;
// iptal gecikmesi bu yüzden en fazla bir kare süresidir.
func (d *Device) runAnimation(a *animation, r Rect) {
	defer close(a.done)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}

	failures := 0
	index := 0

	for {
		select {
		case <-a.stop:
			return
		default:
		}

		frame := a.frames[index]
		if err := d.writeImage(r, frame.Data); err != nil {
			failures++
			d.logf("animasyon karesi yazılamadı (%d/%d): %v",
				failures, maxAnimationWriteFailures, err)
			if failures >= maxAnimationWriteFailures {
				return
			}
		} else {
			failures = 0
		}

		timer.Reset(frame.Delay)
		select {
		case <-a.stop:
			if !timer.Stop() {
				<-timer.C
			}
			return
		case <-timer.C:
		}

		index++
		if index >= len(a.frames) {
			if !a.loop {
				return
			}
			index = 0
		}
	}
}

// ─── Hedef Bazlı Başlatma/Durdurma ──────────────────────────────────────────────

// startKeyAnimation, verilen tuş üzerinde bir animasyon başlatır.
// Aynı tuşta çalışan önceki animasyon önce tamamen durdurulur.
func (d *Device) startKeyAnimation(index int, frames []Frame, loop bool) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	d.animMu.Lock()
	defer d.animMu.Unlock()

	if prev, ok := d.keyAnims[index]; ok {
		prev.stopAndJoin()
		delete(d.keyAnims, index)
	}

	d.keyAnims[index] = d.spawnAnimation(KeyRect(index), frames, loop)
	d.logf("tuş %d animasyonu başladı (%d kare, döngü=%v)", index, len(frames), loop)
	return nil
}

// startScreenAnimation, tam ekran animasyonu başlatır.
// Çalışan önceki ekran animasyonu önce tamamen durdurulur.
func (d *Device) startScreenAnimation(frames []Frame, loop bool) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}

	d.animMu.Lock()
	defer d.animMu.Unlock()

	if d.screenAnim != nil {
		d.screenAnim.stopAndJoin()
		d.screenAnim = nil
	}

	d.screenAnim = d.spawnAnimation(ScreenRect(), frames, loop)
	d.logf("ekran animasyonu başladı (%d kare, döngü=%v)", len(frames), loop)
	return nil
}

// StopKeyAnimation, verilen tuştaki animasyonu durdurur ve işçinin çıkışını
// bekler. Tuşta animasyon yoksa hiçbir şey yapmaz.
func (d *Device) StopKeyAnimation(index int) {
	d.animMu.Lock()
	defer d.animMu.Unlock()

	if anim, ok := d.keyAnims[index]; ok {
		anim.stopAndJoin()
		delete(d.keyAnims, index)
		d.logf("tuş %d animasyonu durduruldu", index)
	}
}

// StopScreenAnimation, tam ekran animasyonunu durdurur ve işçinin çıkışını
// bekler. Ekran animasyonu yoksa hiçbir şey yapmaz.
func (d *Device) StopScreenAnimation() {
	d.animMu.Lock()
	defer d.animMu.Unlock()

	if d.screenAnim != nil {
		d.screenAnim.stopAndJoin()
		d.screenAnim = nil
		d.logf("ekran animasyonu durduruldu")
	}
}

// StopAllAnimations, önce ekran animasyonunu, sonra tüm tuş animasyonlarını
// sırayla durdurur; her birinin işçisi beklendikten sonra sıradakine geçilir.
func (d *Device) StopAllAnimations() {
	d.StopScreenAnimation()
	for i := 0; i < KeyCount; i++ {
		d.StopKeyAnimation(i)
	}
}
