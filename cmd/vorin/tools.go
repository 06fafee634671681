package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

var initCommand = &cli.Command{
	Name:   "init",
	Usage:  "Creates a vorin.yaml manifest in the current directory",
	Flags:  []cli.Flag{},
	Action: initAction,
}

func initAction(ctx context.Context, cmd *cli.Command) error {
	if _, err := os.Stat(manifestFileName); err == nil {
		fmt.Printf("%s already exists\n", manifestFileName)
		return nil
	}
	m := &Manifest{
		Name:    defaultManifestName(),
		Require: map[string]string{},
	}
	if err := m.save(manifestFileName); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	fmt.Printf("Created %s\n", manifestFileName)
	return nil
}

var requireCommand = &cli.Command{
	Name:   "require",
	Usage:  "Adds a required package to your vorin.yaml and installs it",
	Flags:  []cli.Flag{},
	Action: requireAction,
}

func requireAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("require: expected a package name, e.g. `vorin require vorin/json`")
	}
	name := args[0]
	constraint := "*"
	if len(args) > 1 {
		constraint = args[1]
	}

	m, err := loadManifest(manifestFileName)
	if os.IsNotExist(err) {
		m = &Manifest{Name: defaultManifestName()}
	} else if err != nil {
		return fmt.Errorf("require: %w", err)
	}
	if m.Require == nil {
		m.Require = map[string]string{}
	}
	m.Require[name] = constraint
	if err := m.save(manifestFileName); err != nil {
		return fmt.Errorf("require: %w", err)
	}
	fmt.Printf("Added %s (%s) to %s\n", name, constraint, manifestFileName)
	return resolveDependencies(m)
}

var installCommand = &cli.Command{
	Name:    "install",
	Aliases: []string{"i"},
	Usage:   "Installs the project dependencies from vorin.lock if present, or falls back on vorin.yaml",
	Flags:   []cli.Flag{},
	Action:  installAction,
}

func installAction(ctx context.Context, cmd *cli.Command) error {
	m, err := loadManifest(manifestFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("install: no %s found, run `vorin init` first", manifestFileName)
		}
		return fmt.Errorf("install: %w", err)
	}

	if lock, err := loadLockfile(lockFileName); err == nil {
		for name, version := range lock.Resolved {
			fmt.Printf("  - Installing %s (%s)\n", name, version)
		}
		return nil
	}
	return resolveDependencies(m)
}

var updateCommand = &cli.Command{
	Name:    "update",
	Aliases: []string{"u"},
	Usage:   "Updates dependencies to the latest version allowed by vorin.yaml and rewrites vorin.lock",
	Flags:   []cli.Flag{},
	Action:  updateAction,
}

func updateAction(ctx context.Context, cmd *cli.Command) error {
	m, err := loadManifest(manifestFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("update: no %s found, run `vorin init` first", manifestFileName)
		}
		return fmt.Errorf("update: %w", err)
	}
	fmt.Printf("Updating dependencies from %s\n", manifestFileName)
	return resolveDependencies(m)
}

// resolveDependencies pins every require/require-dev entry's current
// constraint as its resolved version and writes vorin.lock. There is no
// package registry to consult a range against, so the constraint itself is
// the resolution, the same placeholder role the teacher's composer.go stub
// played before vorin.lock existed at all.
func resolveDependencies(m *Manifest) error {
	resolved := map[string]string{}
	for name, constraint := range m.Require {
		resolved[name] = constraint
		fmt.Printf("  - Installing %s (%s)\n", name, constraint)
	}
	for name, constraint := range m.RequireDev {
		resolved[name] = constraint
		fmt.Printf("  - Installing %s (%s) [dev]\n", name, constraint)
	}
	lock := &Lockfile{Resolved: resolved}
	if err := lock.save(lockFileName); err != nil {
		return fmt.Errorf("writing %s: %w", lockFileName, err)
	}
	return nil
}

var validateCommand = &cli.Command{
	Name:   "validate",
	Usage:  "Validates a vorin.yaml manifest",
	Flags:  []cli.Flag{},
	Action: validateAction,
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	m, err := loadManifest(manifestFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("validate: no %s found", manifestFileName)
		}
		return fmt.Errorf("validate: %w", err)
	}

	var problems []string
	if m.Name == "" {
		problems = append(problems, "name is missing")
	}
	for name, constraint := range m.Require {
		if constraint == "" {
			problems = append(problems, fmt.Sprintf("require[%s] has an empty constraint", name))
		}
	}

	if len(problems) > 0 {
		fmt.Printf("%s is invalid:\n", manifestFileName)
		for _, p := range problems {
			fmt.Printf("  - %s\n", p)
		}
		return fmt.Errorf("%s failed validation", manifestFileName)
	}
	fmt.Printf("%s is valid\n", manifestFileName)
	return nil
}

var fpmCommand = &cli.Command{
	Name:  "fpm",
	Usage: "FastCGI process manager",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "c",
			Usage: "Look for php.ini file in this directory",
		},
		&cli.StringFlag{
			Name:    "fpm-config",
			Aliases: []string{"y"},
			Usage:   "Specify alternative path to FastCGI process manager config file.",
		},
	},
	Action: fpmAction,
}

func fpmAction(ctx context.Context, cmd *cli.Command) error {
	fmt.Println("Run PHP script with FPM")
	return nil
}
