package netutil

import (
	"bufio"
	"net/http"
	"os"
	"strings"
)

// ParseCookieFile reads session cookies from a cookie file. Two line formats
// are accepted: the Netscape cookie-jar layout
//
//	domain<TAB>flag<TAB>path<TAB>secure<TAB>expiration<TAB>name<TAB>value
//
// and plain "name=value" lines. Blank lines and lines starting with '#' are
// skipped. A later entry for the same cookie name overrides an earlier one.
func ParseCookieFile(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var (
		order  []string
		values = make(map[string]string)
	)
	add := func(name, value string) {
		if _, seen := values[name]; !seen {
			order = append(order, name)
		}
		values[name] = value
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if fields := strings.Split(line, "\t"); len(fields) >= 7 {
			add(fields[5], fields[6])
			continue
		}
		if name, value, ok := strings.Cut(line, "="); ok {
			add(strings.TrimSpace(name), strings.TrimSpace(value))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	cookies := make([]*http.Cookie, 0, len(order))
	for _, name := range order {
		cookies = append(cookies, &http.Cookie{Name: name, Value: values[name]})
	}
	return cookies, nil
}
