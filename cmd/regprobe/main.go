// Command regprobe reads chipset status registers and reports their values
// as hexadecimal glyphs drawn into a framebuffer, over a port channel, or
// both.
//
// Usage:
//
//	regprobe g|p|* [key=value ...]
//
// See the hal package for the recognized keys.
package main

import (
	"os"
	"regprobe/kernel/hal"

	_ "regprobe/device/video/adapter/fbdev"
	_ "regprobe/device/video/adapter/memfb"
	_ "regprobe/device/video/adapter/termfb"
	_ "regprobe/device/video/adapter/window"
)

func main() {
	status := hal.Run(os.Args[1:], os.Stdout)
	os.Exit(status.Code())
}
