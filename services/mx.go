package services

import (
	"context"
	"sync"
	"time"

	"github.com/miekg/dns"
)

// MXChecker reports whether a mail domain accepts mail.
type MXChecker interface {
	HasMX(ctx context.Context, domain string) bool
}

// DNSMXChecker queries public resolvers for MX records and caches answers
// per domain.
type DNSMXChecker struct {
	client  *dns.Client
	servers []string

	mu    sync.Mutex
	cache map[string]bool
}

func NewDNSMXChecker(timeout time.Duration, servers ...string) *DNSMXChecker {
	if len(servers) == 0 {
		servers = []string{"8.8.8.8:53", "1.1.1.1:53"}
	}
	return &DNSMXChecker{
		client:  &dns.Client{Timeout: timeout},
		servers: servers,
		cache:   make(map[string]bool),
	}
}

func (c *DNSMXChecker) HasMX(ctx context.Context, domain string) bool {
	if domain == "" {
		return false
	}
	c.mu.Lock()
	ok, cached := c.cache[domain]
	c.mu.Unlock()
	if cached {
		return ok
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeMX)
	msg.RecursionDesired = true

	for _, server := range c.servers {
		resp, _, err := c.client.ExchangeContext(ctx, msg, server)
		if err != nil || resp == nil {
			continue
		}
		ok = resp.Rcode == dns.RcodeSuccess && len(resp.Answer) > 0
		c.mu.Lock()
		c.cache[domain] = ok
		c.mu.Unlock()
		return ok
	}
	// Resolver trouble is not evidence against the domain.
	return true
}
