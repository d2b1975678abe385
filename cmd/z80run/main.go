package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/retrogo/z80emu/pkg/conformance"
	"github.com/retrogo/z80emu/pkg/cpu"
	"github.com/retrogo/z80emu/pkg/loader"
	"github.com/retrogo/z80emu/pkg/system"
	"github.com/retrogo/z80emu/pkg/trace"
	"github.com/spf13/cobra"
)

// logger reports host-observable errors and non-fatal warnings
// (TerminalSetupFailure and similar) to stderr, in the style every
// CLI front end in the example pack uses: no structured logging
// library, just the standard logger with the executable name as a
// prefix.
var logger *log.Logger

func init() {
	exe, err := os.Executable()
	if err != nil {
		exe = "z80run"
	}
	logger = log.New(os.Stderr, filepath.Base(exe)+": ", 0)
}

// Config is the fully resolved set of run options. There is no
// configuration-file layer in this repository; a Config is built
// directly from cobra flags.
type Config struct {
	Path       string
	SystemKind string
	Port       string
	TraceOut   string
	Snapshot   string
	Resume     string
}

func main() {
	var cfg Config

	root := &cobra.Command{
		Use:           "z80run [file]",
		Short:         "Run a Z80 program under the BASIC-SBC or CP/M shell",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			cfg.Path = args[0]
			return runMachine(cfg)
		},
	}
	root.PersistentFlags().StringVar(&cfg.SystemKind, "system", "", `override system auto-detect: "basic" or "cpm"`)
	root.PersistentFlags().StringVar(&cfg.Port, "port", "", "override the ACIA serial port base, e.g. 0x80")
	root.PersistentFlags().StringVar(&cfg.TraceOut, "trace-out", "", "write an execution trace as JSON to this path")
	root.PersistentFlags().StringVar(&cfg.Snapshot, "snapshot", "", "write a resumable snapshot here when the run ends")
	root.PersistentFlags().StringVar(&cfg.Resume, "resume", "", "resume execution from a snapshot written by --snapshot")

	runCmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Load and run a program (same as the bare positional form)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Path = args[0]
			return runMachine(cfg)
		},
	}

	selftestCmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the conformance suite and print a pass/fail summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest()
		},
	}

	root.AddCommand(runCmd, selftestCmd)

	if err := root.Execute(); err != nil {
		logger.Println(err)
		os.Exit(1)
	}
}

func runSelftest() error {
	pool := conformance.NewPool(0)
	results := pool.Run(conformance.DefaultScenarios())
	report, failed := conformance.Summarize(results)
	fmt.Print(report)
	if failed > 0 {
		return fmt.Errorf("selftest: %d scenario(s) failed", failed)
	}
	return nil
}

// runMachine resolves the target system, loads the program, and hands
// off to the matching shell loop.
func runMachine(cfg Config) error {
	kind, err := resolveKind(cfg)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	switch kind {
	case system.KindCpm:
		return runCpm(cfg)
	default:
		return runBasic(cfg)
	}
}

func resolveKind(cfg Config) (system.Kind, error) {
	if cfg.SystemKind != "" {
		return system.ParseKind(cfg.SystemKind)
	}
	return system.DetectKind(cfg.Path), nil
}

func parsePort(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid --port %q: %w", s, err)
	}
	return uint16(v), nil
}

// loadImage writes path's contents into mem starting at defaultAddr,
// choosing between Intel HEX and raw binary by content/extension
// sniffing, per the loader's auto-detection rule.
func loadImage(mem []uint8, path string, defaultAddr uint16) (int, error) {
	if loader.IsHexFile(path) {
		return loader.LoadHex(mem, path)
	}
	return loader.LoadBinary(mem, path, defaultAddr)
}

func runBasic(cfg Config) error {
	basic := system.NewBasic(0x80, os.Stdout)

	n, err := loadImage(basic.Mem[:], cfg.Path, 0x0000)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.Path, err)
	}
	basic.ProtectROM()

	port, err := resolveSerialPort(cfg, basic.Mem[:], n)
	if err != nil {
		return err
	}
	basic.SerialBase = port

	c := cpu.New(basic)
	if cfg.Resume != "" {
		if err := resumeInto(cfg.Resume, c, basic.Mem[:]); err != nil {
			return err
		}
	}

	term := newTerminalHost()
	term.Start()
	defer term.Stop()

	var tbl *trace.Table
	if cfg.TraceOut != "" {
		tbl = trace.NewTable()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	quit := false
	for !quit {
		select {
		case <-sigCh:
			quit = true
		default:
		}
		if term.Quit() {
			quit = true
		}

		budget := system.QuantumTStates
		for budget > 0 && !quit {
			pc := c.PC
			t := c.Step()
			budget -= t
			if tbl != nil {
				text, _ := cpu.Disassemble(basic, pc)
				tbl.Add(trace.Entry{PC: pc, Mnemonic: text, TStates: t, Clocks: c.Clocks})
			}
		}

		if basic.PollInput(c, term.NextByte) {
			c.Interrupt(0xFF)
		}
	}

	return finishRun(cfg, c, basic.Mem[:], tbl)
}

func runCpm(cfg Config) error {
	cpm := system.NewCpm(os.Stdout)

	if _, err := loadImage(cpm.Mem[:], cfg.Path, 0x0100); err != nil {
		return fmt.Errorf("load %s: %w", cfg.Path, err)
	}

	c := cpu.New(cpm)
	c.PC = 0x0100
	c.SP = 0xFFFE
	cpm.WriteMem(0xFFFE, 0x00)
	cpm.WriteMem(0xFFFF, 0x00)

	if cfg.Resume != "" {
		if err := resumeInto(cfg.Resume, c, cpm.Mem[:]); err != nil {
			return err
		}
	}

	var tbl *trace.Table
	if cfg.TraceOut != "" {
		tbl = trace.NewTable()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-sigCh:
			return finishRun(cfg, c, cpm.Mem[:], tbl)
		default:
		}

		if c.PC == 0x0005 {
			fn := system.BdosFunction(c.C)
			if cpm.HandleBdos(fn, c.E, c.DE()) {
				break
			}
			bdosReturn(c, cpm)
			continue
		}
		if c.PC == 0x0000 || c.Halted {
			break
		}

		pc := c.PC
		t := c.Step()
		if tbl != nil {
			text, _ := cpu.Disassemble(cpm, pc)
			tbl.Add(trace.Entry{PC: pc, Mnemonic: text, TStates: t, Clocks: c.Clocks})
		}
	}

	return finishRun(cfg, c, cpm.Mem[:], tbl)
}

// bdosReturn synthesizes the RET that would otherwise follow a real
// BDOS entry point: it pops the return address CALL 5 pushed and
// resumes the caller there.
func bdosReturn(c *cpu.Cpu, bus cpu.Bus) {
	lo := uint16(bus.ReadMem(c.SP))
	hi := uint16(bus.ReadMem(c.SP + 1))
	c.SP += 2
	c.PC = hi<<8 | lo
}

func resolveSerialPort(cfg Config, mem []uint8, loaded int) (uint16, error) {
	if cfg.Port != "" {
		return parsePort(cfg.Port)
	}
	return system.DetectSerialPort(mem, loaded), nil
}

func resumeInto(path string, c *cpu.Cpu, mem []uint8) error {
	snap, err := trace.Load(path)
	if err != nil {
		return fmt.Errorf("resume %s: %w", path, err)
	}
	snap.Restore(c)
	copy(mem, snap.Mem)
	return nil
}

func finishRun(cfg Config, c *cpu.Cpu, mem []uint8, tbl *trace.Table) error {
	if cfg.Snapshot != "" {
		if err := trace.Save(cfg.Snapshot, c, mem); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}
	if tbl != nil {
		f, err := os.Create(cfg.TraceOut)
		if err != nil {
			return fmt.Errorf("trace-out: %w", err)
		}
		defer f.Close()
		if err := tbl.WriteJSON(f); err != nil {
			return fmt.Errorf("trace-out: %w", err)
		}
	}
	return nil
}
