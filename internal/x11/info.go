package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/shirou/gopsutil/process"

	"github.com/edgelit/edgelit/pkg/config"
)

// windowInfo gathers the attributes window rules match against. Every
// field is best-effort: a window without a title or pid simply matches
// fewer rules.
func (d *Dispatcher) windowInfo(id xproto.Window) config.WindowInfo {
	var info config.WindowInfo

	if name, err := ewmh.WmNameGet(d.conn.XUtil, id); err == nil && name != "" {
		info.Title = name
	} else if name, err := icccm.WmNameGet(d.conn.XUtil, id); err == nil {
		info.Title = name
	}

	if class, err := icccm.WmClassGet(d.conn.XUtil, id); err == nil {
		info.Class = class.Class
	}

	if pid, err := ewmh.WmPidGet(d.conn.XUtil, id); err == nil && pid > 0 {
		if proc, err := process.NewProcess(int32(pid)); err == nil {
			if name, err := proc.Name(); err == nil {
				info.Process = name
			}
		}
	}
	return info
}
