// Package app wires the turning-grille cracker's external interfaces:
// CLI argument parsing, cipher/clear-text file I/O, CPU warm-up, and
// driver selection and construction, around the cracker and queue
// packages that do the actual work.
package app

import (
	"runtime"
	"time"

	"code.hybscloud.com/silo/cracker"
	"code.hybscloud.com/silo/grille"
	"code.hybscloud.com/silo/internal/errs"
	"code.hybscloud.com/silo/queue"
	"github.com/rs/zerolog"
)

const (
	encryptedMsgPath = "encrypted_msg.txt"
	decryptedMsgPath = "decrypted_msg.txt"
	heatDuration     = 60 * time.Second
)

// Run executes one end-to-end cracking pass for cfg and returns the
// process exit code: 0 on success (the expected clear text was among the
// reported candidates), 1 on any Configuration or Invariant error. Fatal
// errors are logged to log with their Kind before Run returns.
func Run(cfg Config, log zerolog.Logger) int {
	cipherText, err := readCipherText(encryptedMsgPath)
	if err != nil {
		return fail(log, err)
	}
	expectedClearText, err := readExpectedClearText(decryptedMsgPath)
	if err != nil {
		return fail(log, err)
	}

	ctx, err := cracker.NewContext(cipherText, cfg.Verbose, log)
	if err != nil {
		return fail(log, err)
	}
	defer ctx.Close()

	driver, err := newDriver(cfg.Variant)
	if err != nil {
		return fail(log, err)
	}

	if !cfg.Verbose {
		heatCpu(runtime.NumCPU(), heatDuration)
	}

	candidates, err := ctx.BruteForce(driver)
	if err != nil {
		return fail(log, err)
	}

	if _, found := candidates[expectedClearText]; !found {
		return fail(log, errs.New(errs.Invariant, "expected clear text was not among the reported candidates"))
	}

	return 0
}

// newDriver builds the Driver named by variant. syncless and serial run
// with no shared queue at all; every other name selects a
// ProducerConsumerDriver over the named queue.NewPortionQueue backing,
// sized from the CPU count.
func newDriver(variant string) (cracker.Driver, error) {
	switch variant {
	case "syncless":
		return cracker.NewSynclessDriver(), nil
	case "serial":
		return cracker.NewSerialDriver(), nil
	default:
		cpuCount := runtime.NumCPU()
		producerCount := cpuCount
		initialConsumerCount := 3 * cpuCount
		maxQueueSize := uint64(initialConsumerCount) * uint64(producerCount) * 1000

		portionQueue, err := queue.NewPortionQueue[grille.Grille](variant, maxQueueSize)
		if err != nil {
			return nil, err
		}
		return cracker.NewProducerConsumerDriver(initialConsumerCount, producerCount, portionQueue), nil
	}
}

func fail(log zerolog.Logger, err error) int {
	kind, ok := errs.KindOf(err)
	ev := log.Error()
	if ok {
		ev = ev.Str("kind", string(kind))
	}
	ev.Msg(err.Error())
	return 1
}
