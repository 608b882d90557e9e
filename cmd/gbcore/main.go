package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/config"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/internal/remote"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

type (
	CLI struct {
		Run    Run    `cmd:"" help:"Run a ROM headless for a number of frames."`
		Disasm Disasm `cmd:"" help:"Disassemble a ROM."`
		Info   Info   `cmd:"" help:"Show ROM infos."`
		Serve  Serve  `cmd:"" help:"Run a ROM with the remote debugger attached."`

		Config   string `name:"config" help:"Configuration file." type:"path"`
		LogLevel string `name:"log-level" help:"Log level (debug, info, warn, error)."`
		Model    string `name:"model" help:"Model to emulate (dmg, mgb, cgb, sgb...)."`
		Boot     string `name:"boot" help:"Boot ROM to run before the cartridge." type:"existingfile"`
	}

	Run struct {
		RomPath    string `arg:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`
		Frames     int    `name:"frames" help:"Number of frames to run." default:"60"`
		Trace      string `name:"trace" help:"Write CPU trace log, compressed when FILE ends in .br." placeholder:"FILE" type:"path"`
		Breakpoint string `name:"breakpoint" help:"Stop when PC reaches ADDR." placeholder:"ADDR"`
		Serial     bool   `name:"serial" help:"Print serial output to stdout."`
	}

	Disasm struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`
		Start   string `name:"start" help:"Address to start from." default:"0100"`
		Count   int    `name:"count" help:"Number of instructions." default:"32"`
	}

	Info struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`
	}

	Serve struct {
		RomPath string `arg:"" name:"/path/to/rom" help:"${rompath_help}" type:"existingfile"`
		Addr    string `name:"addr" help:"Debugger listen address."`
		Paused  bool   `name:"paused" help:"Wait for the debugger before running."`
	}
)

var vars = kong.Vars{
	"rompath_help": "ROM image, optionally .gz, .zip or .7z compressed.",
}

// globals is what every command needs, after merging the
// configuration file with the command line.
type globals struct {
	cfg    config.Config
	log    log.Logger
	model  types.Model
	boot   []byte
	stdout io.Writer
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gbcore"),
		kong.Description("Cycle accurate Game Boy CPU core."),
		kong.UsageOnError(),
		vars)

	g, err := cli.globals()
	ctx.FatalIfErrorf(err)
	ctx.FatalIfErrorf(ctx.Run(g))
}

func (c *CLI) globals() (*globals, error) {
	path := c.Config
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if c.LogLevel != "" {
		cfg.General.LogLevel = c.LogLevel
	}
	if c.Model != "" {
		cfg.General.Model = c.Model
	}
	if c.Boot != "" {
		cfg.General.BootROM = c.Boot
	}

	g := &globals{cfg: cfg, stdout: os.Stdout}
	if g.log, err = log.NewLevel(cfg.General.LogLevel); err != nil {
		return nil, err
	}
	if cfg.General.Model != "" {
		if g.model = types.StringToModel(cfg.General.Model); g.model == types.Unset {
			return nil, errors.Errorf("unknown model %q", cfg.General.Model)
		}
	}
	if cfg.General.BootROM != "" {
		if g.boot, err = utils.LoadFile(cfg.General.BootROM); err != nil {
			return nil, errors.Wrap(err, "loading boot rom")
		}
	}
	return g, nil
}

// newGameBoy loads the ROM at path, applying the global options.
func (g *globals) newGameBoy(path string, opts ...gameboy.Opt) (*gameboy.GameBoy, error) {
	rom, err := utils.LoadFile(path)
	if err != nil {
		return nil, err
	}

	opts = append(opts, gameboy.WithLogger(log.WithFields(g.log, log.Fields{"rom": path})))
	if g.model != types.Unset {
		opts = append(opts, gameboy.AsModel(g.model))
	}
	if len(g.boot) > 0 {
		opts = append(opts, gameboy.WithBootROM(g.boot))
	}
	return gameboy.NewGameBoy(rom, opts...)
}

func (r *Run) Run(g *globals) error {
	var opts []gameboy.Opt
	if r.Breakpoint != "" {
		addr, err := config.ParseAddress(r.Breakpoint)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBreakpoint(addr))
	}
	if r.Serial {
		opts = append(opts, gameboy.SerialDebugger(func(b uint8) {
			g.stdout.Write([]byte{b})
		}))
	}

	tracePath := r.Trace
	if tracePath == "" {
		tracePath = g.cfg.General.Trace
	}
	if tracePath != "" {
		opts = append(opts, gameboy.WithTraceFile(tracePath))
	}

	gb, err := g.newGameBoy(r.RomPath, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := gb.Close(); err != nil {
			g.log.Errorf("flushing trace %s: %v", tracePath, err)
		}
	}()

	for frame := 0; frame < r.Frames; frame++ {
		status, err := gb.TickFrame()
		if err != nil {
			fmt.Fprintf(g.stdout, "\nstopped at frame %d: %v\n", frame, err)
			break
		}
		if status == gameboy.BreakpointHit {
			fmt.Fprintf(g.stdout, "\nbreakpoint hit at frame %d\n", frame)
			break
		}
	}

	regs := gb.Registers()
	dis, _ := gb.Disassemble(regs.PC)
	fmt.Fprintf(g.stdout, "%s\nnext: %s\nclock: %d\n", regs, dis, gb.Clock())
	return nil
}

func (d *Disasm) Run(g *globals) error {
	rom, err := utils.LoadFile(d.RomPath)
	if err != nil {
		return err
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		return err
	}
	pc, err := config.ParseAddress(d.Start)
	if err != nil {
		return err
	}

	for i := 0; i < d.Count; i++ {
		text, length := cpu.Disassemble(cart, pc)
		fmt.Fprintf(g.stdout, "%04X  % -9X %s\n", pc, instructionBytes(cart, pc, length), text)
		if uint32(pc)+uint32(length) > 0xFFFF {
			break
		}
		pc += uint16(length)
	}
	return nil
}

func instructionBytes(r cpu.Reader, pc uint16, length uint8) []byte {
	b := make([]byte, length)
	for i := range b {
		b[i] = r.Read(pc + uint16(i))
	}
	return b
}

func (i *Info) Run(g *globals) error {
	rom, err := utils.LoadFile(i.RomPath)
	if err != nil {
		return err
	}
	h, err := cartridge.ParseHeader(rom)
	if err != nil {
		return err
	}

	fmt.Fprintf(g.stdout, "%s\n", h)
	fmt.Fprintf(g.stdout, "header checksum: %02X (valid: %t)\n", h.HeaderChecksum, cartridge.ValidChecksum(rom, h))
	fmt.Fprintf(g.stdout, "xxhash: %016x\n", cartridge.Checksum(rom))
	return nil
}

func (s *Serve) Run(g *globals) error {
	var opts []gameboy.Opt
	if g.cfg.Debugger.Breakpoint != "" {
		addr, err := config.ParseAddress(g.cfg.Debugger.Breakpoint)
		if err != nil {
			return err
		}
		opts = append(opts, gameboy.WithBreakpoint(addr))
	}
	gb, err := g.newGameBoy(s.RomPath, opts...)
	if err != nil {
		return err
	}

	addr := s.Addr
	if addr == "" {
		addr = g.cfg.Debugger.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := gameboy.NewRunner(gb, s.Paused, g.cfg.General.Pacing)
	server := remote.NewServer(runner, g.log)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return runner.Run(ctx)
	})
	eg.Go(func() error {
		return server.ListenAndServe(ctx, addr)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
