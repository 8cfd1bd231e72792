package mxkeypad

import (
	"errors"
	"testing"
	"time"
)

// testFrames, animasyon testleri için sahte JPEG kareleri üretir.
// Veri içeriği önemsizdir; sürücü katmanı JPEG doğrulaması yapmaz.
func testFrames(count int, delay time.Duration) []Frame {
	frames := make([]Frame, count)
	for i := range frames {
		frames[i] = Frame{Data: []byte{0xff, 0xd8, byte(i)}, Delay: delay}
	}
	return frames
}

// waitClosed, kanalın makul sürede kapanmasını bekler.
func waitClosed(t *testing.T, ch chan struct{}, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}

func newAnimDevice(t *testing.T) (*Device, *fakeChannel) {
	t.Helper()
	d, fc := newFakeDevice(t, WithSettleDelay(0))
	if err := d.Initialize(); err != nil {
		t.Fatal(err)
	}
	return d, fc
}

func TestAnimationRequiresFrames(t *testing.T) {
	d, _ := newAnimDevice(t)
	if err := d.startKeyAnimation(0, nil, true); !errors.Is(err, ErrNoFrames) {
		t.Errorf("startKeyAnimation(nil) = %v, ErrNoFrames bekleniyordu", err)
	}
	if err := d.startScreenAnimation(nil, true); !errors.Is(err, ErrNoFrames) {
		t.Errorf("startScreenAnimation(nil) = %v, ErrNoFrames bekleniyordu", err)
	}
}

func TestAnimationNonLoopEndsItself(t *testing.T) {
	d, fc := newAnimDevice(t)
	initWrites := fc.writeCount()

	if err := d.startKeyAnimation(0, testFrames(3, 10*time.Millisecond), false); err != nil {
		t.Fatal(err)
	}

	d.animMu.Lock()
	anim := d.keyAnims[0]
	d.animMu.Unlock()

	waitClosed(t, anim.done, "döngüsüz animasyon kendiliğinden bitmedi")
	if got := fc.writeCount() - initWrites; got != 3 {
		t.Errorf("%d kare yazıldı, 3 bekleniyordu", got)
	}

	// Bitmiş animasyonu durdurmak zararsızdır.
	d.StopKeyAnimation(0)
}

func TestAnimationStopWithinOneFrameDelay(t *testing.T) {
	d, _ := newAnimDevice(t)

	if err := d.startKeyAnimation(4, testFrames(2, 300*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	d.StopKeyAnimation(4)
	if elapsed := time.Since(start); elapsed > 350*time.Millisecond {
		t.Errorf("durdurma %v sürdü, en fazla bir kare gecikmesi bekleniyordu", elapsed)
	}

	d.animMu.Lock()
	_, stillThere := d.keyAnims[4]
	d.animMu.Unlock()
	if stillThere {
		t.Error("durdurulan animasyon kayıttan silinmeli")
	}
}

func TestAnimationReplaceJoinsPrevious(t *testing.T) {
	d, _ := newAnimDevice(t)

	if err := d.startKeyAnimation(2, testFrames(2, 50*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}
	d.animMu.Lock()
	prev := d.keyAnims[2]
	d.animMu.Unlock()

	if err := d.startKeyAnimation(2, testFrames(2, 50*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}

	select {
	case <-prev.done:
	default:
		t.Error("yeni animasyon başlamadan önceki işçi bitmiş olmalı")
	}

	d.animMu.Lock()
	next := d.keyAnims[2]
	d.animMu.Unlock()
	if next == prev {
		t.Error("yeni animasyon ayrı bir işçi olmalı")
	}
	d.StopKeyAnimation(2)
}

func TestAnimationIndependentTargets(t *testing.T) {
	d, _ := newAnimDevice(t)

	if err := d.startKeyAnimation(0, testFrames(2, 30*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}
	if err := d.startKeyAnimation(8, testFrames(2, 30*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}
	if err := d.startScreenAnimation(testFrames(2, 30*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}

	// Bir hedefi durdurmak diğerlerini etkilemez.
	d.StopKeyAnimation(0)

	d.animMu.Lock()
	_, key8Running := d.keyAnims[8]
	screenRunning := d.screenAnim != nil
	d.animMu.Unlock()
	if !key8Running || !screenRunning {
		t.Error("diğer hedeflerin animasyonları çalışmaya devam etmeli")
	}

	d.StopAllAnimations()

	d.animMu.Lock()
	remaining := len(d.keyAnims)
	screenLeft := d.screenAnim != nil
	d.animMu.Unlock()
	if remaining != 0 || screenLeft {
		t.Error("StopAllAnimations tüm kayıtları temizlemeli")
	}
}

func TestAnimationStopsAfterConsecutiveWriteFailures(t *testing.T) {
	d, fc := newAnimDevice(t)

	fc.mu.Lock()
	fc.failAll = errors.New("io error")
	fc.mu.Unlock()

	if err := d.startKeyAnimation(1, testFrames(1, 10*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}
	d.animMu.Lock()
	anim := d.keyAnims[1]
	d.animMu.Unlock()

	waitClosed(t, anim.done, "ardışık yazma hataları animasyonu sonlandırmalı")
}

func TestScreenAnimationStop(t *testing.T) {
	d, _ := newAnimDevice(t)

	if err := d.startScreenAnimation(testFrames(2, 30*time.Millisecond), true); err != nil {
		t.Fatal(err)
	}
	d.StopScreenAnimation()

	d.animMu.Lock()
	left := d.screenAnim
	d.animMu.Unlock()
	if left != nil {
		t.Error("durdurulan ekran animasyonu kayıttan silinmeli")
	}
	// Animasyon yokken durdurma zararsızdır.
	d.StopScreenAnimation()
}

func TestSetKeyGifEndToEnd(t *testing.T) {
	d, fc := newAnimDevice(t)
	gifData := makeTestGIF(t, 2, 3)

	if err := d.SetKeyGif(0, gifData, false); err != nil {
		t.Fatalf("SetKeyGif hata: %v", err)
	}
	d.animMu.Lock()
	anim := d.keyAnims[0]
	d.animMu.Unlock()
	waitClosed(t, anim.done, "döngüsüz GIF animasyonu bitmedi")

	// Son yazılan paket, tuş 0 dikdörtgenine bir JPEG taşımalı.
	burst := fc.writes[fc.writeCount()-1]
	first := burst[0]
	if first[firstHeaderLength] != 0xff || first[firstHeaderLength+1] != 0xd8 {
		t.Error("animasyon karesi JPEG ile başlamıyor")
	}

	if err := d.SetKeyGif(9, gifData, false); !errors.Is(err, ErrInvalidKeyIndex) {
		t.Errorf("SetKeyGif(9) = %v, ErrInvalidKeyIndex bekleniyordu", err)
	}
	if err := d.SetKeyGif(0, []byte("gif değil"), false); err == nil {
		t.Error("bozuk GIF verisi hata döndürmeli")
	}
}
