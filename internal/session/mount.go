package session

import (
	"bufio"
	"fmt"
	"os/exec"
	"strings"

	"github.com/qkzk/dired/internal/menu"
)

// removableDevice is one block device reported by lsblk, eligible for the
// Mount menu.
type removableDevice struct {
	Name       string // e.g. sdb1
	Mountpoint string // "" if not currently mounted
}

// listRemovableDevices runs `lsblk` and parses its NAME/MOUNTPOINT columns
// for partitions, skipping the root filesystem's own device.
func listRemovableDevices() ([]removableDevice, error) {
	out, err := exec.Command("lsblk", "-rno", "NAME,MOUNTPOINT,TYPE").Output()
	if err != nil {
		return nil, err
	}
	var devices []removableDevice
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		// An unmounted partition has an empty MOUNTPOINT column, so its
		// line splits into two fields (NAME, TYPE) instead of three.
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[len(fields)-1] != "part" {
			continue
		}
		dev := removableDevice{Name: fields[0]}
		if len(fields) >= 3 {
			dev.Mountpoint = fields[1]
		}
		if dev.Mountpoint == "/" {
			continue
		}
		devices = append(devices, dev)
	}
	return devices, scanner.Err()
}

// mountBackend lists known partitions; Enter toggles mount/unmount through
// udisksctl, which (unlike plain mount(8)) needs no root privileges for
// removable media owned by the logged-in user.
func mountBackend() menu.Backend {
	var devices []removableDevice
	return closureBackend{
		load: func(m *menu.Menu) {
			var err error
			devices, err = listRemovableDevices()
			if err != nil {
				m.Replace(nil)
				return
			}
			rows := make([]menu.Row, len(devices))
			for i, d := range devices {
				label := "/dev/" + d.Name
				if d.Mountpoint != "" {
					label += " -> " + d.Mountpoint + " (mounted)"
				} else {
					label += " (unmounted)"
				}
				rows[i] = menu.Row{Label: label, Key: d.Name}
			}
			m.Replace(rows)
		},
		commit: func(key string) (string, bool, error) {
			for _, d := range devices {
				if d.Name != key {
					continue
				}
				if d.Mountpoint != "" {
					return "", true, exec.Command("udisksctl", "unmount", "-b", "/dev/"+key).Run()
				}
				out, err := exec.Command("udisksctl", "mount", "-b", "/dev/"+key).Output()
				if err != nil {
					return "", true, err
				}
				return parseMountedAt(string(out)), true, nil
			}
			return "", true, fmt.Errorf("mount: device %q no longer present", key)
		},
	}
}

// parseMountedAt extracts the destination path from udisksctl's
// "Mounted /dev/sdb1 at /media/user/LABEL." stdout.
func parseMountedAt(output string) string {
	const marker = " at "
	i := strings.Index(output, marker)
	if i < 0 {
		return ""
	}
	rest := output[i+len(marker):]
	return strings.TrimSuffix(strings.TrimSpace(rest), ".")
}
