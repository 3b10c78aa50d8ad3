package discovery

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"
)

// DefaultWordlist is the set of labels the DNS source tries under a domain.
var DefaultWordlist = []string{
	"www", "mail", "ftp", "smtp", "pop", "imap", "webmail", "ns1", "ns2",
	"dns", "mx", "vpn", "remote", "api", "dev", "staging", "stage", "test",
	"qa", "uat", "beta", "demo", "admin", "portal", "app", "apps", "m",
	"mobile", "blog", "shop", "store", "cdn", "static", "assets", "img",
	"media", "docs", "help", "support", "status", "git", "gitlab", "jenkins",
	"ci", "jira", "wiki", "intranet", "internal", "auth", "sso", "login",
	"id", "accounts", "grafana", "kibana", "monitor", "metrics", "db",
	"mysql", "redis", "backup", "cloud", "s3", "files", "download", "news",
	"forum", "community", "secure", "gateway", "proxy", "edge", "old", "new",
}

// DNS resolves wordlist labels under the domain against one resolver.
type DNS struct {
	Resolver    string // host:port
	Wordlist    []string
	Rate        int // queries per second
	Concurrency int
	Timeout     time.Duration

	once    sync.Once
	limiter ratelimit.Limiter
}

func (s *DNS) Name() string { return "dns" }

func (s *DNS) Enumerate(ctx context.Context, d string) ([]string, error) {
	s.once.Do(func() {
		rate := s.Rate
		if rate <= 0 {
			rate = 50
		}
		s.limiter = ratelimit.New(rate)
	})

	client := &dns.Client{Net: "udp", Timeout: s.timeout()}

	// A wildcard zone answers for every label, so the wordlist tells us nothing.
	probe, err := randomLabel()
	if err != nil {
		return nil, err
	}
	wild, err := s.resolves(ctx, client, probe+"."+d)
	if err != nil {
		return nil, fmt.Errorf("wildcard probe: %w", err)
	}
	if wild {
		return nil, nil
	}

	words := s.Wordlist
	if len(words) == 0 {
		words = DefaultWordlist
	}
	found := make([]bool, len(words))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency())
	for i, w := range words {
		g.Go(func() error {
			ok, err := s.resolves(gctx, client, w+"."+d)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				return nil // a single lost query is not fatal
			}
			found[i] = ok
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for i, ok := range found {
		if ok {
			out = append(out, words[i]+"."+d)
		}
	}
	return out, nil
}

// resolves reports whether name has an A, AAAA or CNAME answer.
func (s *DNS) resolves(ctx context.Context, client *dns.Client, name string) (bool, error) {
	s.limiter.Take()

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeA)
	m.RecursionDesired = true

	r, _, err := client.ExchangeContext(ctx, m, s.Resolver)
	if err != nil {
		return false, err
	}
	if r.Rcode != dns.RcodeSuccess {
		return false, nil
	}
	for _, rr := range r.Answer {
		switch rr.(type) {
		case *dns.A, *dns.AAAA, *dns.CNAME:
			return true, nil
		}
	}
	return false, nil
}

func (s *DNS) timeout() time.Duration {
	if s.Timeout <= 0 {
		return 3 * time.Second
	}
	return s.Timeout
}

func (s *DNS) concurrency() int {
	if s.Concurrency <= 0 {
		return 10
	}
	return s.Concurrency
}

func randomLabel() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return "wc-" + hex.EncodeToString(b[:]), nil
}

var _ Source = (*DNS)(nil)
