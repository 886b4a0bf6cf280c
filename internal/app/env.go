package app

import (
    "bufio"
    "errors"
    "os"
    "strings"
)

// LoadEnvFiles loads one or more dotenv files of KEY=VALUE pairs into the
// process environment. Later files override earlier ones. Lines starting with
// '#' and blank lines are ignored, an optional leading "export " is accepted,
// and values are not expanded. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
    for _, p := range paths {
        if strings.TrimSpace(p) == "" {
            continue
        }
        if err := loadEnvFile(p); err != nil {
            if errors.Is(err, os.ErrNotExist) {
                continue
            }
            return err
        }
    }
    return nil
}

func loadEnvFile(path string) error {
    f, err := os.Open(path)
    if err != nil {
        return err
    }
    defer f.Close()

    scanner := bufio.NewScanner(f)
    for scanner.Scan() {
        key, val, ok := parseEnvLine(scanner.Text())
        if !ok {
            continue
        }
        _ = os.Setenv(key, val)
    }
    return scanner.Err()
}

// parseEnvLine splits a dotenv line at the first '='. Surrounding single or
// double quotes are removed from the value.
func parseEnvLine(line string) (string, string, bool) {
    line = strings.TrimSpace(line)
    if line == "" || strings.HasPrefix(line, "#") {
        return "", "", false
    }
    line = strings.TrimPrefix(line, "export ")
    eq := strings.IndexByte(line, '=')
    if eq <= 0 {
        return "", "", false
    }
    key := strings.TrimSpace(line[:eq])
    val := strings.TrimSpace(line[eq+1:])
    if len(val) >= 2 {
        if (val[0] == '"' && val[len(val)-1] == '"') || (val[0] == '\'' && val[len(val)-1] == '\'') {
            val = val[1 : len(val)-1]
        }
    }
    return key, val, key != ""
}
