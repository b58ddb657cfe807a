package deps

import (
	"testing"

	"github.com/op/go-logging"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogLevel(t *testing.T) {
	Convey("Log threshold", t, func() {
		So(logLevel("", ""), ShouldEqual, logging.DEBUG)
		So(logLevel("production", ""), ShouldEqual, logging.INFO)
		So(logLevel("production", "warning"), ShouldEqual, logging.WARNING)
		So(logLevel("", "ERROR"), ShouldEqual, logging.ERROR)

		Convey("unknown names fall back to the environment default", func() {
			So(logLevel("production", "loud"), ShouldEqual, logging.INFO)
			So(logLevel("", "loud"), ShouldEqual, logging.DEBUG)
		})
	})

	Convey("Production records are uncolored", t, func() {
		So(logFormat("production"), ShouldEqual, prodFormat)
		So(logFormat("staging"), ShouldEqual, devFormat)
	})
}
