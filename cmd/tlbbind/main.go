//go:build windows

// tlbbind generates Go bindings from a COM type library. The target
// may be a .tlb/.dll/.ocx path, a ProgID or a CLSID; non-path targets
// are located through the registry.
package main

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/olebind/olebind/codegen"
	"github.com/olebind/olebind/olert"
	"github.com/olebind/olebind/typelib"
	"github.com/olebind/olebind/utils"
)

type refConf struct {
	Tlb string
	Pkg string
}

type conf struct {
	OutDir             string
	EmitDispInterfaces bool
	Refs               []refConf
}

var opts = struct {
	outDir    string
	emitDisp  bool
	refTlbs   string
	refPkgs   string
	confFile  string
	logLevel  string
	createDir bool
}{}

var (
	errNoOutDir       = errors.New("no output directory specified")
	errMismatchedRefs = errors.New("imp-tlbs and imp-pkgs counts do not match")
)

var logger hclog.Logger

var rootCmd = &cobra.Command{
	Use:   "tlbbind <tlb-path | progid | clsid>",
	Short: "Generate Go bindings from a COM type library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		logger = hclog.New(&hclog.LoggerOptions{
			Name:  "tlbbind",
			Level: hclog.LevelFromString(opts.logLevel),
		})
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().StringVar(&opts.outDir, "out-dir", "", "output directory")
	rootCmd.Flags().BoolVar(&opts.emitDisp, "emit-dispinterfaces", false,
		"emit wrappers for pure dispinterfaces")
	rootCmd.Flags().StringVar(&opts.refTlbs, "imp-tlbs", "",
		"referenced tlb file paths (; separated)")
	rootCmd.Flags().StringVar(&opts.refPkgs, "imp-pkgs", "",
		"import paths of the referenced tlbs' bindings (; separated)")
	rootCmd.Flags().StringVar(&opts.confFile, "config", "",
		"TOML config file; flags override its settings")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level")
	rootCmd.Flags().BoolVar(&opts.createDir, "create-dir", false,
		"create the output directory if missing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(target string) error {
	c, err := loadConf()
	if err != nil {
		return err
	}

	if err := olert.EnsureInitialized(); err != nil {
		return err
	}

	tlbPath := target
	if !utils.FileExists(tlbPath) {
		tlbPath, err = olert.LocateTypeLib(target)
		if err != nil {
			return err
		}
		logger.Debug("located type library", "target", target, "path", tlbPath)
	}

	tlb, err := typelib.NewTypeLibFromFile(tlbPath)
	if err != nil {
		return err
	}
	defer tlb.Dispose()
	logger.Info("loaded type library", "name", tlb.Name(), "path", tlbPath)

	if !utils.DirExists(c.OutDir) {
		if !opts.createDir {
			logger.Error("output dir does not exist", "dir", c.OutDir)
			os.Exit(1)
		}
		if err := os.MkdirAll(c.OutDir, 0755); err != nil {
			return err
		}
	}

	gen := codegen.Generator{
		TypeLib:            tlb,
		OutputPath:         c.OutDir,
		EmitDispInterfaces: c.EmitDispInterfaces,
		RefLibMap:          make(map[string]*typelib.TypeLib),
	}
	for _, ref := range c.Refs {
		refTlb, err := typelib.NewTypeLibFromFile(ref.Tlb)
		if err != nil {
			return err
		}
		defer refTlb.Dispose()
		gen.RefLibMap[ref.Pkg] = refTlb
		logger.Debug("loaded referenced type library", "path", ref.Tlb, "pkg", ref.Pkg)
	}

	result, err := gen.Generate()
	if err != nil {
		return err
	}
	logger.Info("done", "summary", result.Summary())
	if result.MissingTypes > 0 || result.TypesNotFound > 0 {
		logger.Warn("some types did not resolve; the generated code "+
			"carries placeholders for them",
			"missing", result.MissingTypes, "notFound", result.TypesNotFound)
	}
	return nil
}

// loadConf merges the TOML config file, if any, with the command-line
// flags. Flags win.
func loadConf() (*conf, error) {
	var c conf
	if opts.confFile != "" {
		meta, err := toml.DecodeFile(opts.confFile, &c)
		if err != nil {
			return nil, err
		}
		if len(meta.Undecoded()) > 0 {
			logger.Warn("undecoded fields in config", "fields", meta.Undecoded())
		}
	}
	if opts.outDir != "" {
		c.OutDir = opts.outDir
	}
	if opts.emitDisp {
		c.EmitDispInterfaces = true
	}

	refTlbs := splitList(opts.refTlbs)
	refPkgs := splitList(opts.refPkgs)
	if len(refTlbs) != len(refPkgs) {
		return nil, errMismatchedRefs
	}
	for n := range refTlbs {
		c.Refs = append(c.Refs, refConf{Tlb: refTlbs[n], Pkg: refPkgs[n]})
	}

	if c.OutDir == "" {
		return nil, errNoOutDir
	}
	return &c, nil
}

func splitList(s string) []string {
	s = strings.TrimRight(s, ";")
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}
