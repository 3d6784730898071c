package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/assafBarash/node-package-bootstrapper/internal/bootstrap"
	"github.com/assafBarash/node-package-bootstrapper/internal/config"
	"github.com/assafBarash/node-package-bootstrapper/internal/manifest"
	"github.com/assafBarash/node-package-bootstrapper/internal/pkgmanager"
	"github.com/assafBarash/node-package-bootstrapper/internal/recipe"
	"github.com/assafBarash/node-package-bootstrapper/internal/runner"
)

// newFlags holds everything the new command accepts besides the app name.
type newFlags struct {
	dir            string
	presets        []string
	recipes        []string
	scripts        []string
	deps           []string
	devDeps        []string
	params         []string
	files          []string
	filesFrom      string
	filesGlob      string
	postScripts    []string
	toolArgs       []string
	packageManager string
	ignoreTemplate string
	ignoreEntries  []string
	envFile        string
	dryRun         bool
}

var newOpts newFlags

func init() {
	bindNewFlags(newCmd, &newOpts)
	rootCmd.AddCommand(newCmd)
}

// bindNewFlags registers the new command's flags on cmd. Repeatable flags
// take one value per occurrence; commas are never split.
func bindNewFlags(cmd *cobra.Command, nf *newFlags) {
	f := cmd.Flags()
	f.StringVar(&nf.dir, "dir", "", "Directory to create the project in (default: current directory)")
	f.StringArrayVar(&nf.presets, "preset", nil, "Apply a bundled preset (repeatable)")
	f.StringArrayVar(&nf.recipes, "recipe", nil, "Apply a recipe file, YAML or JSON (repeatable)")
	f.StringArrayVar(&nf.scripts, "script", nil, "Add a package.json script as name=command (repeatable)")
	f.StringArrayVar(&nf.deps, "dep", nil, "Install a runtime dependency (repeatable)")
	f.StringArrayVar(&nf.devDeps, "dev-dep", nil, "Install a dev dependency (repeatable)")
	f.StringArrayVar(&nf.params, "param", nil, "Set a top-level package.json field as key=value; JSON values keep their type (repeatable)")
	f.StringArrayVar(&nf.files, "file", nil, "Write a file as path=content (repeatable)")
	f.StringVar(&nf.filesFrom, "files-from", "", "Copy files from a directory into the project")
	f.StringVar(&nf.filesGlob, "files-glob", "**/*", "Glob selecting files under --files-from")
	f.StringArrayVar(&nf.postScripts, "post-script", nil, "Run a shell command after setup (repeatable)")
	f.StringArrayVar(&nf.toolArgs, "arg", nil, "Append flags to npx post-scripts as tool=flags (repeatable)")
	f.StringVar(&nf.packageManager, "package-manager", "", "npm, pnpm or yarn (default from config)")
	f.StringVar(&nf.ignoreTemplate, "ignore-template", "", "Use this file as .gitignore instead of the bundled one")
	f.StringArrayVar(&nf.ignoreEntries, "ignore", nil, "Append a pattern to .gitignore (repeatable)")
	f.StringVar(&nf.envFile, "env-file", "", "Load KEY=VALUE pairs into the environment of every command")
	f.BoolVar(&nf.dryRun, "dry-run", false, "Print the plan without changing anything")
}

var newCmd = &cobra.Command{
	Use:   "new <app-name>",
	Short: "Create a new Node.js package directory",
	Long: `Create <app-name> under the target directory and provision it.

Layers are applied in order: presets, then recipe files, then flags. Scripts,
params and files from later layers win; dependency lists and post-scripts are
concatenated.

Examples:
  bootstrapper new my-cli --preset typescript --preset node-cli
  bootstrapper new api --dep express --dev-dep typescript --script start="node build/index.js"
  bootstrapper new lib --recipe ./recipe.yaml --arg tsc="--rootDir src --outDir build"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNew(cmd, args[0], newOpts)
	},
}

func runNew(cmd *cobra.Command, appName string, nf newFlags) error {
	settings := config.Current()

	opts, err := buildOptions(nf)
	if err != nil {
		return err
	}

	pmName := nf.packageManager
	if pmName == "" {
		pmName = settings.PackageManager
	}
	pm, err := pkgmanager.Lookup(pmName)
	if err != nil {
		return err
	}

	baseDir := nf.dir
	if baseDir == "" {
		if baseDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
	}

	ignoreTemplate := nf.ignoreTemplate
	if ignoreTemplate == "" {
		ignoreTemplate = settings.IgnoreTemplate
	}

	shell := runner.NewShell(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	shell.Logger = logger
	envFile := nf.envFile
	if envFile == "" {
		envFile = settings.EnvFile
	}
	if envFile != "" {
		if err := shell.LoadEnvFile(envFile); err != nil {
			return err
		}
	}

	b, err := bootstrap.New(bootstrap.Config{
		BaseDir:        baseDir,
		AppName:        appName,
		Runner:         shell,
		PackageManager: pm,
		IgnoreTemplate: ignoreTemplate,
		IgnoreEntries:  nf.ignoreEntries,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	if opts.IsZero() {
		logger.InfoContext(cmd.Context(), "no presets, recipes or flags given; running the default init only")
	}

	out := cmd.OutOrStdout()
	if nf.dryRun {
		steps, err := b.Plan(opts)
		if err != nil {
			return err
		}
		printPlan(out, b.Dir(), steps)
		return nil
	}

	res, err := b.Bootstrap(cmd.Context(), opts)
	if err != nil {
		return err
	}
	printResult(out, appName, res)
	return nil
}

// buildOptions merges presets, recipe files, and flag values, in that order.
func buildOptions(nf newFlags) (*recipe.Options, error) {
	var layers []*recipe.Options

	for _, name := range nf.presets {
		p, err := recipe.Preset(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		layers = append(layers, p)
	}
	for _, path := range nf.recipes {
		r, err := recipe.LoadFile(path)
		if err != nil {
			return nil, err
		}
		layers = append(layers, r)
	}

	if nf.filesFrom != "" {
		files, err := recipe.FilesFromDir(nf.filesFrom, nf.filesGlob)
		if err != nil {
			return nil, err
		}
		layers = append(layers, &recipe.Options{Files: files})
	}

	flagLayer, err := flagOptions(nf)
	if err != nil {
		return nil, err
	}
	layers = append(layers, flagLayer)

	opts := recipe.Merge(layers...)

	toolArgs, err := parsePairs("arg", nf.toolArgs)
	if err != nil {
		return nil, err
	}
	args := make(map[string]string, len(toolArgs))
	for _, p := range toolArgs {
		args[p.key] = p.value
	}
	recipe.ApplyToolArgs(opts, args)
	return opts, nil
}

func flagOptions(nf newFlags) (*recipe.Options, error) {
	opts := &recipe.Options{PostScripts: nf.postScripts}

	scripts, err := parsePairs("script", nf.scripts)
	if err != nil {
		return nil, err
	}
	params, err := parsePairs("param", nf.params)
	if err != nil {
		return nil, err
	}
	files, err := parsePairs("file", nf.files)
	if err != nil {
		return nil, err
	}

	if len(scripts)+len(params)+len(nf.deps)+len(nf.devDeps) > 0 {
		pkg := &recipe.PackageJSON{
			Dependencies:    nf.deps,
			DevDependencies: nf.devDeps,
		}
		if len(scripts) > 0 {
			pkg.Scripts = manifest.NewObject()
			for _, p := range scripts {
				pkg.Scripts.Set(p.key, manifest.String(p.value))
			}
		}
		if len(params) > 0 {
			pkg.Params = manifest.NewObject()
			for _, p := range params {
				pkg.Params.Set(p.key, manifest.ParseLiteral(p.value))
			}
		}
		opts.PackageJSON = pkg
	}

	if len(files) > 0 {
		opts.Files = make(map[string]string, len(files))
		for _, p := range files {
			opts.Files[p.key] = p.value
		}
	}
	return opts, nil
}

type pair struct {
	key   string
	value string
}

// parsePairs splits key=value flag values at the first "=". Keys must be
// non-empty; values may be empty or contain further "=".
func parsePairs(flag string, raw []string) ([]pair, error) {
	out := make([]pair, 0, len(raw))
	for _, s := range raw {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --%s %q: expected key=value", flag, s)
		}
		out = append(out, pair{key: k, value: v})
	}
	return out, nil
}

func printResult(w io.Writer, appName string, res *bootstrap.Result) {
	fmt.Fprintf(w, "Created %s at %s/\n", appName, res.Dir)
	for _, f := range res.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	if len(res.Commands) > 0 {
		fmt.Fprintln(w, "\nCommands run:")
		for _, c := range res.Commands {
			fmt.Fprintf(w, "  %s\n", c)
		}
	}
	if len(res.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range res.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  cd %s\n", appName)
}

func printPlan(w io.Writer, dir string, steps []bootstrap.Step) {
	fmt.Fprintf(w, "Dry run for %s/\n", dir)
	for i, s := range steps {
		fmt.Fprintf(w, "  %2d. [%s] %s\n", i+1, s.Stage, s.Action)
	}
}
