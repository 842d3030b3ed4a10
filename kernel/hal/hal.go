// Package hal wires the probe together: it parses the command line, detects
// and activates the display, opens the register and port collaborators,
// performs the boot services handoff and reports every register value.
package hal

import (
	"io"
	"regprobe/device"
	"regprobe/device/output"
	"regprobe/device/port"
	"regprobe/device/register"
	"regprobe/device/video/console"
	"regprobe/device/video/fb"
	"regprobe/kernel"
	"regprobe/kernel/kfmt"
	"sort"
	"strings"
)

const (
	devMemPath  = "/dev/mem"
	devPortPath = "/dev/port"
)

var (
	errInvalidArg   = &kernel.Error{Module: "hal", Message: "invalid mode argument", Status: kernel.InvalidParameter}
	errNoDriver     = &kernel.Error{Module: "hal", Message: "display adapter driver not found", Status: kernel.NotFound}
	errNotAdapter   = &kernel.Error{Module: "hal", Message: "driver does not expose display modes", Status: kernel.Unsupported}
	errRegisterOpen = &kernel.Error{Module: "hal", Message: "unable to open register source", Status: kernel.LoadError}
	errPortOpen     = &kernel.Error{Module: "hal", Message: "unable to open port sink", Status: kernel.DeviceError}
	errPortClose    = &kernel.Error{Module: "hal", Message: "unable to flush and close port sink", Status: kernel.DeviceError}

	// activeLifecycle provides the boot services handoff.
	activeLifecycle Lifecycle = &hostLifecycle{}
)

// The collaborators opened by Run. Tests replace them with mocks.
var (
	loadLuaTableFn = register.LoadLuaTable
	openDevPortFn  = func() (io.WriteCloser, error) { return port.OpenDevPort(devPortPath, port.COM1) }
	openSerialFn   = func(dev string) (io.WriteCloser, error) { return port.OpenSerial(dev) }
	openSpeakerFn  = func() (io.WriteCloser, error) { return port.OpenSpeaker() }
	createWAVFn    = func(path string) (io.WriteCloser, error) { return port.CreateWAV(path) }

	openDevMemFn = func(path string) (register.Reader, io.Closer, error) {
		m, err := register.OpenDevMem(path)
		return m, m, err
	}
)

// Run executes the probe with the supplied arguments. args[0] is the output
// mode; the remaining arguments form the command line. Setup output goes to
// out until the boot services handoff. Run returns Success without doing
// anything if no arguments are given.
func Run(args []string, out io.Writer) kernel.Status {
	kfmt.SetOutputSink(out)

	if len(args) == 0 {
		return kernel.Success
	}

	mode := output.ParseMode(args[0])
	if mode == output.ModeInvalid {
		return fail("parse mode argument", errInvalidArg)
	}

	cfg, err := ParseConfig(ParseCmdLine(strings.Join(args[1:], " ")))
	if err != nil {
		return fail("parse command line", err)
	}

	var (
		hexConsole *console.HexConsole
		display    device.Driver
		session    *fb.Session
	)

	if mode.Graphics() {
		if display, err = probeDisplay(cfg.Adapter); err != nil {
			return fail("probe display", err)
		}

		w := &kfmt.PrefixWriter{Sink: kfmt.GetOutputSink(), Prefix: []byte("[fb] ")}
		if session, err = fb.Activate(w, []fb.Adapter{display.(fb.Adapter)}, cfg.Mode); err != nil {
			return fail("activate display", err)
		}

		session.SetLineAlgorithm(cfg.Line)
		hexConsole = console.NewSessionConsole(session, cfg.Columns)
	}

	table, reader, closeReader, err := openRegisters(cfg)
	if err != nil {
		return fail("open register source", err)
	}
	defer closeReader()

	var sink io.WriteCloser
	if mode.Port() {
		if sink, err = openPortSink(cfg.Port); err != nil {
			return fail("open port sink", err)
		}
	}

	renderers := reportChannels(sink, hexConsole)

	kfmt.Printf("[hal] reporting %d registers (mode %s)\n", len(table), mode)
	kfmt.Printf("[hal] before exit boot services:\n")
	for _, reg := range table {
		kfmt.Printf("    %s == 0x%X\n", reg, reader.Read32(reg.Addr))
	}

	if op, err := handoff(activeLifecycle); err != nil {
		if sink != nil {
			sink.Close()
		}
		return fail(op, err)
	}

	// Boot services are gone; from here on nothing reaches the console.
	kfmt.SetOutputSink(nil)

	values := make([]uint32, len(table))
	for i, reg := range table {
		values[i] = reader.Read32(reg.Addr)
	}
	renderers.Report(values)

	status := kernel.Success
	if sink != nil {
		if closeErr := sink.Close(); closeErr != nil {
			kfmt.Printf("[hal] %s\n", closeErr)
			status = fail("close port sink", errPortClose)
		}
	}

	if err = Freeze(cfg, display, session); err != nil {
		return err.Status
	}

	return status
}

// reportChannels returns the renderers for the selected channels. The port
// channel goes first so that it has reported every value before the slower
// graphics channel starts drawing.
func reportChannels(sink io.Writer, hexConsole *console.HexConsole) output.Multi {
	var renderers output.Multi
	if sink != nil {
		renderers = append(renderers, port.NewRenderer(sink))
	}
	if hexConsole != nil {
		renderers = append(renderers, hexConsole)
	}

	return renderers
}

// fail logs a failed setup operation and returns its status.
func fail(op string, err *kernel.Error) kernel.Status {
	kfmt.Printf("%s: expected status %s; got %s (%s)\n", op, kernel.Success, err.Status, err.Message)
	return err.Status
}

// probeDisplay runs the probe functions of the drivers registered under name
// in detection order and returns the first one that initializes and exposes
// display modes.
func probeDisplay(name string) (device.Driver, *kernel.Error) {
	drivers := device.DriverList()
	sort.Sort(drivers)

	candidates := drivers.Named(name)
	if len(candidates) == 0 {
		return nil, errNoDriver
	}

	if drv := probe(candidates); drv != nil {
		return drv, nil
	}

	return nil, errNotAdapter
}

// probe executes the probe function for each driver and returns the first
// successfully initialized driver that is a display adapter.
func probe(driverInfoList device.DriverInfoList) device.Driver {
	var w = kfmt.PrefixWriter{Sink: kfmt.GetOutputSink()}

	for _, info := range driverInfoList {
		drv := info.Probe()
		if drv == nil {
			continue
		}

		major, minor, patch := drv.DriverVersion()
		w.Prefix = kfmt.DriverPrefix("hal", drv.DriverName(), major, minor, patch)

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			continue
		}

		kfmt.Fprintf(&w, "initialized\n")
		if _, ok := drv.(fb.Adapter); ok {
			return drv
		}
	}

	return nil
}

// openRegisters loads the register table and opens the configured reader.
// The returned func releases the reader.
func openRegisters(cfg Config) (register.Table, register.Reader, func(), *kernel.Error) {
	table := register.DefaultTable
	if cfg.Regs != "" {
		t, err := loadLuaTableFn(cfg.Regs)
		if err != nil {
			kfmt.Printf("[hal] %s\n", err)
			return nil, nil, nil, errRegisterOpen
		}
		table = t
	}

	switch cfg.Source {
	case SourceFixed:
		f, err := register.NewFixed(table, cfg.Values)
		if err != nil {
			kfmt.Printf("[hal] %s\n", err)
			return nil, nil, nil, errRegisterOpen
		}
		return table, f, func() {}, nil
	default:
		reader, closer, err := openDevMemFn(devMemPath)
		if err != nil {
			kfmt.Printf("[hal] %s\n", err)
			return nil, nil, nil, errRegisterOpen
		}
		return table, reader, func() { closer.Close() }, nil
	}
}

// openPortSink opens the byte sink used by the port channel.
func openPortSink(cfg PortConfig) (io.WriteCloser, *kernel.Error) {
	var (
		sink io.WriteCloser
		err  error
	)

	switch cfg.Kind {
	case PortSerial:
		sink, err = openSerialFn(cfg.Path)
	case PortSpeaker:
		sink, err = openSpeakerFn()
	case PortWAV:
		sink, err = createWAVFn(cfg.Path)
	default:
		sink, err = openDevPortFn()
	}

	if err != nil {
		kfmt.Printf("[hal] %s\n", err)
		return nil, errPortOpen
	}

	return sink, nil
}
