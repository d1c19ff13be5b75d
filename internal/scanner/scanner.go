package scanner

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Hara602/ttyAnchor/internal/model"
	"github.com/pilebones/go-udev/crawler"
	"go.uber.org/zap"
)

// serialPrefixes are the kernel names of USB serial adapter nodes we care
// about. Anything else under the tty class is ignored.
var serialPrefixes = []string{"ttyUSB", "ttyACM", "ttyAMA", "ttySC"}

// Scanner enumerates connected USB serial devices from the sysfs device
// tree. Scans are read-only and side-effect-free; every call is a full
// re-snapshot.
type Scanner struct {
	log *zap.Logger
}

// New returns a Scanner, or an error when the sysfs device tree is not
// available. That error is not recoverable at runtime.
func New(log *zap.Logger) (*Scanner, error) {
	if _, err := os.Stat(crawler.BASE_DEVPATH); err != nil {
		return nil, fmt.Errorf("sysfs device tree unavailable at %s: %w", crawler.BASE_DEVPATH, err)
	}
	return &Scanner{log: log}, nil
}

// Scan walks the device tree and returns every valid USB serial device,
// sorted by device node path. Finding none is not an error.
func (s *Scanner) Scan() []model.DeviceRecord {
	queue := make(chan crawler.Device)
	errs := make(chan error, 1)
	crawler.ExistingDevices(queue, errs, nil)

	var found []model.DeviceRecord
	for {
		select {
		case dev, more := <-queue:
			if !more {
				sort.Slice(found, func(i, j int) bool {
					return found[i].DevPath < found[j].DevPath
				})
				return found
			}
			if rec, ok := s.inspect(dev); ok {
				found = append(found, rec)
			}
		case err := <-errs:
			// A bad kobject should not abort the whole snapshot.
			s.log.Warn("sysfs crawl error", zap.Error(err))
		}
	}
}

// inspect filters one crawled kobject down to a USB serial device record.
func (s *Scanner) inspect(dev crawler.Device) (model.DeviceRecord, bool) {
	name := strings.TrimPrefix(dev.Env["DEVNAME"], "/dev/")
	if name == "" || !isSerialNode(name) {
		return model.DeviceRecord{}, false
	}

	rec, ok := recordFromSysPath(dev.KObj, name)
	if !ok {
		// No USB ancestor: an on-board UART or similar, not ours to name.
		s.log.Debug("skipping non-USB tty node", zap.String("node", name))
		return model.DeviceRecord{}, false
	}

	s.log.Debug("found USB serial device",
		zap.String("dev", rec.DevPath),
		zap.String("vid", rec.VendorID),
		zap.String("pid", rec.ProductID),
		zap.String("serial", rec.Serial),
	)
	return rec, true
}

func isSerialNode(name string) bool {
	for _, p := range serialPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
