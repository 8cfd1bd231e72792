package mxkeypad

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// ─── Kanal Arayüzü ──────────────────────────────────────────────────────────────
//
// channel, tek bir hidraw uç noktasına ham okuma/yazma erişimini soyutlar.
// Gerçek implementasyon hidrawChannel'dır; testler sahte bir kanal enjekte
// eder. Okuma ve yazma yönleri bağımsızdır: izleme döngüsü kendi kanal
// örneğini açar ve yazıcılarla yarışmaz.

type channel interface {
	// writev, tamponların tamamını tek bir scatter write ile yazar ve
	// kabul edilen toplam byte sayısını döner.
	writev(bufs [][]byte) (int, error)

	// setNonblock, dosya tanıtıcısının non-blocking modunu değiştirir.
	setNonblock(enable bool) error

	// read, en fazla timeout süresince veri bekler ve okunan byte sayısını
	// döner. Zaman aşımında (0, nil) döner.
	read(p []byte, timeout time.Duration) (int, error)

	// close, kanalı kapatır.
	close() error
}

// channelOpener, verilen cihaz yolu için bir kanal açar.
type channelOpener func(path string) (channel, error)

// ─── hidraw Implementasyonu ─────────────────────────────────────────────────────

// hidrawChannel, /dev/hidrawN düğümü üzerinde çalışan kanal implementasyonudur.
type hidrawChannel struct {
	fd   int
	path string
}

// openHidraw, hidraw cihaz düğümünü okuma/yazma modunda açar.
func openHidraw(path string) (channel, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("hidraw açılamadı (%s): %w", path, err)
	}
	return &hidrawChannel{fd: fd, path: path}, nil
}

func (c *hidrawChannel) writev(bufs [][]byte) (int, error) {
	return unix.Writev(c.fd, bufs)
}

func (c *hidrawChannel) setNonblock(enable bool) error {
	flags, err := unix.FcntlInt(uintptr(c.fd), unix.F_GETFL, 0)
	if err != nil {
		return err
	}
	if enable {
		flags |= unix.O_NONBLOCK
	} else {
		flags &^= unix.O_NONBLOCK
	}
	_, err = unix.FcntlInt(uintptr(c.fd), unix.F_SETFL, flags)
	return err
}

func (c *hidrawChannel) read(p []byte, timeout time.Duration) (int, error) {
	fds := []unix.PollFd{{Fd: int32(c.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, fmt.Errorf("poll hatası: %w", err)
	}
	if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return 0, nil
	}

	nr, err := unix.Read(c.fd, p)
	if err != nil {
		if isWouldBlock(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("okuma hatası: %w", err)
	}
	return nr, nil
}

func (c *hidrawChannel) close() error {
	return unix.Close(c.fd)
}

// isWouldBlock, hatanın non-blocking modda "şu an yazılamaz" anlamına gelip
// gelmediğini kontrol eder. Bu durumda yazıcı tek seferlik blocking
// denemesine geçer.
func isWouldBlock(err error) bool {
	return errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK)
}
