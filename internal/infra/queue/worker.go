package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventDispatcher entrega um evento de domínio aos destinos
// cadastrados (console de automação).
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev DomainEvent) error
}

type Worker struct {
	Channel    *amqp.Channel
	Dispatcher EventDispatcher
}

func NewWorker(ch *amqp.Channel, dispatcher EventDispatcher) *Worker {
	return &Worker{
		Channel:    ch,
		Dispatcher: dispatcher,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var ev DomainEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				log.Printf("❌ [WORKER] JSON Inválido: %s", err)
				// Mensagem malformada: rejeita sem requeue para não travar a fila.
				d.Nack(false, false)
				continue
			}

			log.Printf("⚙️ [WORKER] Entregando evento %s aos webhooks", ev.Event)

			if err := w.Dispatcher.Dispatch(context.Background(), ev); err != nil {
				log.Printf("❌ [WORKER] Erro na entrega: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}
