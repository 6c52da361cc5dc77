// Command eventq-bench drives a bounded queue with concurrent producers and
// consumers, verifying delivery with per-message sequence tags and reporting
// throughput. It doubles as a soak test for the reset/cancel path: with
// --reset-interval it periodically resets the queue mid-traffic and checks
// that every worker observes a clean cancellation rather than a lost wakeup.
package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/richinsley/eventq"
)

type benchArgs struct {
	producers     int
	consumers     int
	capacity      int
	msgSize       int
	count         int
	sendTimeout   int64
	recvTimeout   int64
	resetInterval time.Duration
	verbose       bool
}

func main() {
	args := &benchArgs{}

	cmd := &cobra.Command{
		Use:           "eventq-bench",
		Short:         "Stress and benchmark eventq bounded queues",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if args.verbose {
				log.SetLevel(log.DebugLevel)
			}
			return runBench(args)
		},
	}

	cmd.Flags().IntVarP(&args.producers, "producers", "p", 4, "Number of producer goroutines")
	cmd.Flags().IntVarP(&args.consumers, "consumers", "c", 4, "Number of consumer goroutines")
	cmd.Flags().IntVar(&args.capacity, "capacity", 64, "Queue capacity in messages")
	cmd.Flags().IntVar(&args.msgSize, "msg-size", 64, "Message size in bytes (min 8, for the sequence tag)")
	cmd.Flags().IntVarP(&args.count, "count", "n", 1_000_000, "Total messages to deliver")
	cmd.Flags().Int64Var(&args.sendTimeout, "send-timeout", int64(eventq.Forever), "Send timeout in ms (-1 = forever, 0 = poll)")
	cmd.Flags().Int64Var(&args.recvTimeout, "recv-timeout", 100, "Receive timeout in ms (0 = poll; must be bounded so the drain phase terminates)")
	cmd.Flags().DurationVar(&args.resetInterval, "reset-interval", 0, "Reset the queue at this interval (0 = never)")
	cmd.Flags().BoolVarP(&args.verbose, "verbose", "v", false, "Enable debug logging")

	if err := cmd.Execute(); err != nil {
		log.Error("bench failed", "err", err)
		os.Exit(1)
	}
}

func runBench(args *benchArgs) error {
	if args.msgSize < 8 {
		return fmt.Errorf("msg-size must be at least 8, got %d", args.msgSize)
	}
	if args.producers < 1 || args.consumers < 1 {
		return errors.New("need at least one producer and one consumer")
	}
	if args.recvTimeout < 0 {
		return errors.New("recv-timeout must be bounded")
	}

	q, err := eventq.NewQueue(args.capacity, args.msgSize)
	if err != nil {
		return fmt.Errorf("create queue: %w", err)
	}

	log.Info("starting bench",
		"producers", args.producers,
		"consumers", args.consumers,
		"capacity", args.capacity,
		"msg_size", args.msgSize,
		"count", args.count)

	var (
		nextTag       atomic.Int64
		delivered     atomic.Int64
		abandoned     atomic.Int64
		canceledOps   atomic.Int64
		timeoutOps    atomic.Int64
		producersDone atomic.Bool
	)
	seen := make([]atomic.Int32, args.count)

	start := time.Now()

	var pg sync.WaitGroup
	for p := 0; p < args.producers; p++ {
		pg.Add(1)
		go func(id int) {
			defer pg.Done()
			msg := make([]byte, args.msgSize)
			for {
				tag := nextTag.Add(1) - 1
				if tag >= int64(args.count) {
					return
				}
				binary.BigEndian.PutUint64(msg, uint64(tag))
				for {
					err := q.Send(msg, eventq.Timeout(args.sendTimeout))
					if err == nil {
						break
					}
					if errors.Is(err, eventq.ErrTimeout) {
						timeoutOps.Add(1)
						continue
					}
					if errors.Is(err, eventq.ErrCanceled) {
						// The tag never entered the queue; give it up and
						// let the reset storm pass.
						canceledOps.Add(1)
						abandoned.Add(1)
						time.Sleep(time.Millisecond)
						break
					}
					log.Error("producer send", "id", id, "err", err)
					return
				}
			}
		}(p)
	}

	var cg sync.WaitGroup
	for c := 0; c < args.consumers; c++ {
		cg.Add(1)
		go func(id int) {
			defer cg.Done()
			buf := make([]byte, args.msgSize)
			for {
				err := q.Receive(buf, eventq.Timeout(args.recvTimeout))
				if err != nil {
					switch {
					case errors.Is(err, eventq.ErrTimeout):
						timeoutOps.Add(1)
						// The queue stays empty once the producers are
						// finished; that is the drain-complete signal.
						if producersDone.Load() && q.Len() == 0 {
							return
						}
					case errors.Is(err, eventq.ErrCanceled):
						canceledOps.Add(1)
						time.Sleep(time.Millisecond)
					default:
						log.Error("consumer receive", "id", id, "err", err)
						return
					}
					continue
				}
				tag := int64(binary.BigEndian.Uint64(buf))
				if tag < 0 || tag >= int64(args.count) {
					log.Error("tag out of range", "tag", tag)
					return
				}
				if n := seen[tag].Add(1); n != 1 {
					log.Error("duplicate delivery", "tag", tag, "times", n)
					return
				}
				delivered.Add(1)
			}
		}(c)
	}

	stopReset := make(chan struct{})
	var rg sync.WaitGroup
	if args.resetInterval > 0 {
		rg.Add(1)
		go func() {
			defer rg.Done()
			ticker := time.NewTicker(args.resetInterval)
			defer ticker.Stop()
			for {
				select {
				case <-stopReset:
					return
				case <-ticker.C:
					q.Reset()
					q.Unreset()
					log.Debug("reset cycle complete")
				}
			}
		}()
	}

	pg.Wait()
	producersDone.Store(true)
	close(stopReset)
	rg.Wait()
	cg.Wait()
	elapsed := time.Since(start)

	// Messages discarded inside the queue by a reset were sent but never
	// received; count them from the delivery ledger.
	dropped := 0
	for i := range seen {
		if seen[i].Load() == 0 {
			dropped++
		}
	}
	dropped -= int(abandoned.Load())

	rate := float64(delivered.Load()) / elapsed.Seconds()
	log.Info("bench complete",
		"delivered", delivered.Load(),
		"abandoned_sends", abandoned.Load(),
		"dropped_by_reset", dropped,
		"canceled_ops", canceledOps.Load(),
		"timeouts", timeoutOps.Load(),
		"elapsed", elapsed.Round(time.Millisecond),
		"msgs_per_sec", fmt.Sprintf("%.0f", rate))

	if args.resetInterval == 0 && delivered.Load() != int64(args.count) {
		return fmt.Errorf("delivered %d of %d messages", delivered.Load(), args.count)
	}
	return nil
}
