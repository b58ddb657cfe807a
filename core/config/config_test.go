package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tryanzu/storyfeed/core/config"
)

const rulesFile = `
days_check = 7

[visibility.collaboration_share_false]
by_you = false

[visibility.story_unpublished]
by_someone = false

[tags.contents]
podcast = "audios"
`

const trimmedRulesFile = `
[visibility.collaboration_share_false]
by_you = false
`

func TestMerge(t *testing.T) {
	dir, err := ioutil.TempDir("", "storyfeed")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "feed.toml")

	Convey("Merging a rules file", t, func() {
		So(ioutil.WriteFile(file, []byte(rulesFile), 0644), ShouldBeNil)

		c := config.New()
		So(c.Rules().DaysCheck, ShouldEqual, 30)
		So(c.Merge(file), ShouldBeNil)

		r := c.Rules()
		So(r.DaysCheck, ShouldEqual, 7)
		So(r.PageLimit, ShouldEqual, 10)
		So(r.Visibility["story_unpublished"]["by_someone"], ShouldBeFalse)
		So(r.Tags.Contents["podcast"], ShouldEqual, "audios")

		Convey("snapshots are isolated from later changes", func() {
			r.Visibility["story_unpublished"]["by_someone"] = true
			So(c.Rules().Visibility["story_unpublished"]["by_someone"], ShouldBeFalse)
		})

		Convey("a broken file keeps the previous rules", func() {
			So(ioutil.WriteFile(file, []byte("days_check = ["), 0644), ShouldBeNil)
			So(c.Merge(file), ShouldNotBeNil)
			So(c.Rules().DaysCheck, ShouldEqual, 7)
		})

		Convey("reloading forgets entries removed from the file", func() {
			So(ioutil.WriteFile(file, []byte(trimmedRulesFile), 0644), ShouldBeNil)
			So(c.Merge(file), ShouldBeNil)

			r := c.Rules()
			So(r.DaysCheck, ShouldEqual, 30)
			So(r.Visibility, ShouldNotContainKey, "story_unpublished")
			So(r.Visibility["collaboration_share_false"]["by_you"], ShouldBeFalse)
			So(r.Tags.Contents, ShouldBeEmpty)
		})

		Convey("a reload is signalled", func() {
			So(<-c.Reload, ShouldBeTrue)
		})
	})
}
