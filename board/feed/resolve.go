package feed

import (
	"github.com/tryanzu/storyfeed/board/activity"
	"github.com/tryanzu/storyfeed/board/stories"
	"gopkg.in/mgo.v2/bson"
)

// refs holds what message rendering looks up. Missing entries render as
// empty placeholders.
type refs struct {
	stories map[bson.ObjectId]stories.Story
	names   map[bson.ObjectId]string
}

func (r refs) name(id bson.ObjectId, a activity.Activity) string {
	if !id.Valid() {
		return ""
	}
	name, exists := r.names[id]
	if !exists {
		log.Warningf("author reference missing	activity=%s author=%s", a.ID.Hex(), id.Hex())
	}
	return name
}

// other picks the counterpart named in a message: the actor when it is not
// the viewer, then the story owner, then the first other collaborator.
func (r refs) other(a activity.Activity, story stories.Story, viewer bson.ObjectId) bson.ObjectId {
	if a.Author.Valid() && a.Author != viewer {
		return a.Author
	}
	if story.Author.Valid() && story.Author != viewer {
		return story.Author
	}
	for _, c := range story.Collaborators {
		if c.Author.Valid() && c.Author != viewer {
			return c.Author
		}
	}
	return ""
}

func (r refs) resolve(a activity.Activity, role Role, viewer bson.ObjectId) Entry {
	entry := Entry{Activity: a, Kind: a.Type, Role: role}
	if !Ambiguous(a.Type) {
		entry.Message = a.Data.Message
		return entry
	}

	story, exists := r.stories[a.Data.StoryId]
	if !exists && a.Data.StoryId.Valid() {
		log.Warningf("story reference missing	activity=%s story=%s", a.ID.Hex(), a.Data.StoryId.Hex())
	}

	entry.Type = Subtype(a.Type, role)
	entry.Message = Render(a.Type, role, Params{
		Other:        r.name(r.other(a, story, viewer), a),
		Collaborator: r.name(a.Data.CollaboratorId, a),
		Title:        story.Title,
	})
	if entry.Message == "" {
		entry.Message = a.Data.Message
	}
	return entry
}
