package mxkeypad

import (
	"fmt"

	hid "github.com/sstallion/go-hid"
	"golang.org/x/sys/unix"
)

// ─── Cihaz Keşfi ────────────────────────────────────────────────────────────────
//
// Keşif iki aşamalıdır: önce hidapi üzerinden USB kimlikleriyle numaralandırma
// denenir; hidapi kullanılamıyorsa /dev/hidraw düğümleri doğrudan taranır ve
// HIDIOCGRAWINFO ioctl'üyle vendor/product eşleşmesi aranır. Çekirdek sürücü
// katmanı keşfe bağımlı değildir; NewDevice'a hazır bir yol verilir.

// KeypadInfo, bulunan bir MX Keypad cihazını tanımlar.
type KeypadInfo struct {
	// Path, hidraw cihaz düğümünün yoludur (ör: /dev/hidraw3).
	Path string

	// Product, cihazın ürün adıdır (alınabildiyse).
	Product string

	// Serial, cihazın seri numarasıdır (alınabildiyse).
	Serial string
}

// FindKeypads, sistemdeki tüm MX Keypad cihazlarını listeler.
// Hiç cihaz bulunamazsa hata döner.
//
//	keypads, err := mxkeypad.FindKeypads()
//	for _, kp := range keypads {
//	    fmt.Printf("%s  %s  %s\n", kp.Path, kp.Product, kp.Serial)
//	}
func FindKeypads() ([]KeypadInfo, error) {
	if found := enumerateKeypads(); len(found) > 0 {
		return found, nil
	}
	return scanHidraw()
}

// FindFirstKeypad, bulunan ilk MX Keypad'in hidraw yolunu döner.
func FindFirstKeypad() (string, error) {
	keypads, err := FindKeypads()
	if err != nil {
		return "", err
	}
	return keypads[0].Path, nil
}

// enumerateKeypads, hidapi numaralandırmasıyla eşleşen cihazları toplar.
// hidapi aynı cihazı birden fazla kullanım sayfasıyla raporlayabilir;
// sonuçlar yol bazında tekilleştirilir.
func enumerateKeypads() []KeypadInfo {
	if err := hid.Init(); err != nil {
		return nil
	}
	defer hid.Exit()

	seen := make(map[string]bool)
	var found []KeypadInfo

	_ = hid.Enumerate(VendorID, ProductID, func(info *hid.DeviceInfo) error {
		if seen[info.Path] {
			return nil
		}
		seen[info.Path] = true
		found = append(found, KeypadInfo{
			Path:    info.Path,
			Product: info.ProductStr,
			Serial:  info.SerialNbr,
		})
		return nil
	})

	return found
}

// scanHidraw, /dev/hidraw0..19 düğümlerini tarar ve vendor/product kimliği
// eşleşenleri döner. udev gerektirmeyen basit bir geri dönüş yoludur.
func scanHidraw() ([]KeypadInfo, error) {
	var found []KeypadInfo

	for i := 0; i < 20; i++ {
		path := fmt.Sprintf("/dev/hidraw%d", i)
		fd, err := unix.Open(path, unix.O_RDWR|unix.O_NONBLOCK, 0)
		if err != nil {
			continue
		}

		info, ierr := unix.IoctlHIDGetRawInfo(fd)
		name, _ := unix.IoctlHIDGetRawName(fd)
		unix.Close(fd)

		if ierr != nil {
			continue
		}
		if uint16(info.Vendor) == VendorID && uint16(info.Product) == ProductID {
			found = append(found, KeypadInfo{Path: path, Product: name})
		}
	}

	if len(found) == 0 {
		return nil, fmt.Errorf("MX Keypad bulunamadı (vendor=%04x product=%04x)", VendorID, ProductID)
	}
	return found, nil
}
