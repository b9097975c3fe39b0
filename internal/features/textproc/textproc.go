package textproc

// Text file processors behind the bot's "Process Text" menu. All three read
// a source file line by line and write a processed file next to it:
//
//   Clean      - first column of each line, deduplicated and sorted
//   SmartClean - group by main domain with occurrence counts and a stats footer
//   Dedup      - URL:/USER:/PASS: credential dumps grouped by user, unique
//                password list and a stats footer

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	logging "universal-bot/internal/infra/log"

	"go.uber.org/zap"
)

var (
	emailRegex    = regexp.MustCompile(`^[\w.-]+@([\w.-]+\.\w{2,})$`)
	domainFromURL = regexp.MustCompile(`https?://(?:www\.)?([^/\s]+)`)
)

// mainDomain collapses a subdomain to its registrable tail:
// contacts.google.com -> google.com.
func mainDomain(domain string) string {
	parts := strings.Split(domain, ".")
	if len(parts) >= 2 {
		return strings.Join(parts[len(parts)-2:], ".")
	}
	return domain
}

// firstColumn returns the first whitespace-separated field with leading dots
// stripped, or "" for blank lines.
func firstColumn(line string) string {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimLeft(fields[0], ".")
}

func readLines(path string, visit func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		visit(scanner.Text())
	}
	return scanner.Err()
}

func writeResult(path string, build func(w *bufio.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	build(w)
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Clean deduplicates the first column of every line and writes them sorted.
func Clean(srcPath, dstPath string) error {
	domains := map[string]struct{}{}
	if err := readLines(srcPath, func(line string) {
		if d := firstColumn(line); d != "" {
			domains[d] = struct{}{}
		}
	}); err != nil {
		return err
	}

	sorted := make([]string, 0, len(domains))
	for d := range domains {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	return writeResult(dstPath, func(w *bufio.Writer) {
		for _, d := range sorted {
			fmt.Fprintln(w, d)
		}
	})
}

// SmartClean groups lines by their main domain and writes "domain (count)"
// rows sorted by count descending then name, followed by a stats footer.
func SmartClean(srcPath, dstPath string) error {
	logging.LogInfo("Starting smart processing", zap.String("file", srcPath))

	domainCounts := map[string]int{}
	uniqueLines := map[string]struct{}{}

	if err := readLines(srcPath, func(line string) {
		domain := firstColumn(line)
		if domain == "" {
			return
		}
		uniqueLines[domain] = struct{}{}
		domainCounts[mainDomain(domain)]++
	}); err != nil {
		return err
	}

	type domainCount struct {
		domain string
		count  int
	}
	sorted := make([]domainCount, 0, len(domainCounts))
	for d, n := range domainCounts {
		sorted = append(sorted, domainCount{d, n})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].domain < sorted[j].domain
	})

	return writeResult(dstPath, func(w *bufio.Writer) {
		for _, dc := range sorted {
			fmt.Fprintf(w, "%s (%d)\n", dc.domain, dc.count)
		}
		fmt.Fprintf(w, "\n=== STATISTICS ===\n")
		fmt.Fprintf(w, "Total unique lines: %d\n", len(uniqueLines))
		fmt.Fprintf(w, "Unique main domains: %d\n", len(domainCounts))
		if len(sorted) > 0 {
			fmt.Fprintf(w, "Most frequent domain: %s (%d times)\n", sorted[0].domain, sorted[0].count)
		}
	})
}

// Dedup processes URL:/USER:/PASS: credential-dump files: users are grouped
// with the domains they appeared on, passwords are deduplicated globally.
func Dedup(srcPath, dstPath string) error {
	logging.LogInfo("Starting deduplication", zap.String("file", srcPath))

	type pair struct{ user, pass string }
	seenPairs := map[pair]struct{}{}
	userDomains := map[string]map[string]struct{}{}
	passwords := map[string]struct{}{}

	var currentUser, currentDomain string

	if err := readLines(srcPath, func(line string) {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
		case strings.HasPrefix(line, "URL:"):
			u := strings.TrimSpace(line[4:])
			if m := domainFromURL.FindStringSubmatch(u); m != nil {
				currentDomain = m[1]
			} else {
				currentDomain = ""
			}
		case strings.HasPrefix(line, "USER:"):
			user := strings.TrimSpace(line[5:])
			if emailRegex.MatchString(user) {
				currentUser = user
				if userDomains[user] == nil {
					userDomains[user] = map[string]struct{}{}
				}
				if currentDomain != "" {
					userDomains[user][currentDomain] = struct{}{}
				}
			} else {
				currentUser = ""
			}
		case strings.HasPrefix(line, "PASS:") && currentUser != "":
			pass := strings.TrimSpace(line[5:])
			if pass != "" {
				seenPairs[pair{currentUser, pass}] = struct{}{}
				passwords[pass] = struct{}{}
			}
			currentUser = ""
		}
	}); err != nil {
		return err
	}

	users := make([]string, 0, len(userDomains))
	for u := range userDomains {
		users = append(users, u)
	}
	sort.Strings(users)

	sortedPasswords := make([]string, 0, len(passwords))
	for p := range passwords {
		sortedPasswords = append(sortedPasswords, p)
	}
	sort.Strings(sortedPasswords)

	return writeResult(dstPath, func(w *bufio.Writer) {
		fmt.Fprintf(w, "=== USERS ===\n\n")
		for i, user := range users {
			domains := make([]string, 0, len(userDomains[user]))
			for d := range userDomains[user] {
				domains = append(domains, d)
			}
			sort.Strings(domains)
			domainStr := "no data"
			if len(domains) > 0 {
				domainStr = strings.Join(domains, ", ")
			}
			fmt.Fprintf(w, "%d. %s (domains: %s)\n", i+1, user, domainStr)
		}

		fmt.Fprintf(w, "\n=== PASSWORDS (%d unique) ===\n\n", len(sortedPasswords))
		for i, pass := range sortedPasswords {
			fmt.Fprintf(w, "%d. %s\n", i+1, pass)
		}

		fmt.Fprintf(w, "\n=== STATISTICS ===\n")
		fmt.Fprintf(w, "Total users: %d\n", len(users))
		fmt.Fprintf(w, "Total passwords: %d\n", len(sortedPasswords))
		fmt.Fprintf(w, "Total records: %d\n", len(seenPairs))
	})
}
