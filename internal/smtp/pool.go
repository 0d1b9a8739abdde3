package smtp

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"sync"
)

// Config holds the connection settings for the SMTP endpoint.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Secure   bool
}

// Addr returns the host:port dial address.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Pool manages a bounded set of reusable SMTP connections. Connections are
// created lazily; a dead connection pulled from the pool is replaced
// transparently.
type Pool struct {
	connections chan *smtp.Client
	config      Config
	size        int
	mu          sync.Mutex
	closed      bool
}

// NewPool creates a connection pool of the given size. No connections are
// dialed up front; the first Get per slot dials one.
func NewPool(config Config, size int) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{
		connections: make(chan *smtp.Client, size),
		config:      config,
		size:        size,
	}
}

// dial creates a new authenticated SMTP connection.
func (p *Pool) dial() (*smtp.Client, error) {
	addr := p.config.Addr()

	var client *smtp.Client
	if p.config.Secure {
		tlsConfig := &tls.Config{
			ServerName: p.config.Host,
			MinVersion: tls.VersionTLS12,
		}
		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to dial TLS: %w", err)
		}
		client, err = smtp.NewClient(conn, p.config.Host)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create SMTP client: %w", err)
		}
	} else {
		var err error
		client, err = smtp.Dial(addr)
		if err != nil {
			return nil, fmt.Errorf("failed to dial SMTP: %w", err)
		}
		// Opportunistic STARTTLS on plain connections.
		if ok, _ := client.Extension("STARTTLS"); ok {
			tlsConfig := &tls.Config{
				ServerName: p.config.Host,
				MinVersion: tls.VersionTLS12,
			}
			if err := client.StartTLS(tlsConfig); err != nil {
				client.Close()
				return nil, fmt.Errorf("STARTTLS failed: %w", err)
			}
		}
	}

	if p.config.Username != "" && p.config.Password != "" {
		auth := smtp.PlainAuth("", p.config.Username, p.config.Password, p.config.Host)
		if err := client.Auth(auth); err != nil {
			client.Quit()
			return nil, fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	return client, nil
}

// Get retrieves a live connection from the pool, dialing a fresh one when the
// pool is empty or the pooled connection is dead.
func (p *Pool) Get() (*smtp.Client, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("connection pool is closed")
	}
	p.mu.Unlock()

	select {
	case client := <-p.connections:
		if err := client.Noop(); err != nil {
			client.Quit()
			return p.dial()
		}
		return client, nil
	default:
		return p.dial()
	}
}

// Put returns a connection to the pool, closing it when the pool is full or
// already closed.
func (p *Pool) Put(client *smtp.Client) {
	if client == nil {
		return
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		client.Quit()
		return
	}
	p.mu.Unlock()

	select {
	case p.connections <- client:
	default:
		client.Quit()
	}
}

// Verify dials and authenticates one connection, then releases it. Used as a
// startup diagnostic outside production mode.
func (p *Pool) Verify() error {
	client, err := p.dial()
	if err != nil {
		return err
	}
	return client.Quit()
}

// Close closes all pooled connections.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.connections)
	for client := range p.connections {
		if client != nil {
			client.Quit()
		}
	}
}

// Size returns the pool capacity.
func (p *Pool) Size() int {
	return p.size
}
