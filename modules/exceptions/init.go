package exceptions

import (
	"errors"
	"fmt"

	"github.com/getsentry/raven-go"
)

type ExceptionsModule struct {
	ErrorService *raven.Client `inject:""`
}

// Packet turns a recovered value into a sentry packet. Nil yields nil.
func Packet(rval interface{}) *raven.Packet {
	switch rval := rval.(type) {
	case nil:
		return nil
	case error:
		return raven.NewPacket(rval.Error(), raven.NewException(rval, raven.NewStacktrace(3, 3, nil)))
	default:
		rvalStr := fmt.Sprint(rval)
		return raven.NewPacket(rvalStr, raven.NewException(errors.New(rvalStr), raven.NewStacktrace(3, 3, nil)))
	}
}

// Recover reports a panic and lets it continue. Use it deferred.
func (di *ExceptionsModule) Recover(tags map[string]string) {
	rval := recover()
	if rval == nil {
		return
	}

	// Grab the error and send it to sentry
	if di.ErrorService != nil {
		di.ErrorService.Capture(Packet(rval), tags)
		di.ErrorService.Wait()
	}
	panic(rval)
}
