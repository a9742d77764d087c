package natsstan

import (
	"context"
	"fmt"
	"time"

	"github.com/example/larek-store/internal/domain"
	stan "github.com/nats-io/stan.go"
)

// Publisher публикует принятые заказы в NATS Streaming для службы исполнения.
type Publisher struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string

	sc stan.Conn
}

// Connect устанавливает соединение; закрывается по отмене контекста.
func (p *Publisher) Connect(ctx context.Context) error {
	clientID := p.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("larek-shopd-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(p.ClusterID, clientID, stan.NatsURL(p.URL))
	if err != nil {
		return err
	}
	p.sc = sc
	go func() {
		<-ctx.Done()
		sc.Close()
	}()
	return nil
}

func (p *Publisher) Publish(ctx context.Context, raw []byte) error {
	if p.sc == nil {
		return fmt.Errorf("stan publisher is not connected")
	}
	return p.sc.Publish(p.Subject, raw)
}

var _ domain.OrderPublisher = (*Publisher)(nil)
