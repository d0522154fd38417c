package main

import (
	"io/fs"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

// localPaths lists the machine specific strings cobra bakes into flag
// defaults, longest first so the home directory wins over the bare username.
func localPaths() []string {
	var paths []string
	if home, err := homedir.Dir(); err == nil && home != "" {
		paths = append(paths, home)
	}
	if u, err := user.Current(); err == nil {
		name := u.Username
		if i := strings.LastIndexAny(name, `/\`); i >= 0 {
			name = name[i+1:]
		}
		if name != "" {
			paths = append(paths, name)
		}
	}
	return paths
}

func scrubLocalPaths(contents string, paths []string) string {
	for _, p := range paths {
		replacement := "<username>"
		if strings.Contains(p, string(filepath.Separator)) {
			replacement = "$HOME"
		}
		contents = strings.ReplaceAll(contents, p, replacement)
	}
	return contents
}

// Walk rewrites the generated markdown under each dir so the committed
// references carry no local home directory or username.
func Walk(dirs ...string) {
	paths := localPaths()
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || filepath.Ext(path) != ".md" {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			read, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			scrubbed := scrubLocalPaths(string(read), paths)
			if scrubbed == string(read) {
				return nil
			}
			log.Printf("scrubbed %v", path)
			return os.WriteFile(path, []byte(scrubbed), info.Mode().Perm())
		})
		if err != nil {
			log.Fatal(err)
		}
	}
}
