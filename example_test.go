package eventq_test

import (
	"errors"
	"fmt"

	"github.com/richinsley/eventq"
)

func ExampleEvent() {
	ev := eventq.NewEvent()

	const (
		dataReady eventq.EventMask = 1 << iota
		shutdownRequested
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Block until either bit appears, consuming whatever woke us.
		if err := ev.Wait(dataReady|shutdownRequested, eventq.Any, eventq.Clear, eventq.Forever); err != nil {
			return
		}
		fmt.Println("woke up, mask consumed:", ev.Current() == 0)
	}()

	ev.Set(dataReady)
	<-done
	// Output:
	// woke up, mask consumed: true
}

func ExampleQueue() {
	q, err := eventq.NewQueue(2, 4)
	if err != nil {
		panic(err)
	}

	q.Send([]byte("one "), eventq.Forever)
	q.Send([]byte("two "), eventq.Forever)

	// The queue is full; a poll-mode send fails instead of blocking.
	if err := q.Send([]byte("lost"), eventq.Poll); errors.Is(err, eventq.ErrTimeout) {
		fmt.Println("queue full")
	}

	buf := make([]byte, 4)
	q.Receive(buf, eventq.Forever)
	fmt.Printf("%s\n", buf)
	// Output:
	// queue full
	// one
}

func ExampleQueue_reset() {
	q, err := eventq.NewQueue(1, 1)
	if err != nil {
		panic(err)
	}
	q.Send([]byte{1}, eventq.Forever)

	canceled := make(chan struct{})
	go func() {
		defer close(canceled)
		// This sender blocks on the full queue until Reset cancels it.
		if err := q.Send([]byte{2}, eventq.Forever); errors.Is(err, eventq.ErrCanceled) {
			fmt.Println("sender canceled")
		}
	}()

	q.Reset()
	<-canceled
	fmt.Println("queued messages:", q.Len())
	// Output:
	// sender canceled
	// queued messages: 0
}

func ExampleMsgQueue() {
	type task struct {
		ID   int
		Name string
	}

	mq, err := eventq.NewMsgQueue(4, 256)
	if err != nil {
		panic(err)
	}

	mq.Send(task{ID: 7, Name: "resize"}, eventq.Forever)

	var got task
	mq.Receive(&got, eventq.Forever)
	fmt.Printf("%d %s\n", got.ID, got.Name)
	// Output:
	// 7 resize
}
