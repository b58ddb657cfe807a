package invites

import (
	"errors"
)

var ErrNoRecipient = errors.New("invite query needs an account or an email")

// FindList returns collaboration and group invitations matched by q,
// newest first.
func FindList(d deps, q Query) (List, error) {
	if !q.Invited.Valid() && q.Email == "" {
		return nil, ErrNoRecipient
	}

	var collaborations []Collaboration
	err := d.Mgo().C("invites").Find(q.Document(KindCollaboration)).All(&collaborations)
	if err != nil {
		return nil, err
	}

	var groups []Group
	err = d.Mgo().C("group_invites").Find(q.Document(KindGroup)).All(&groups)
	if err != nil {
		return nil, err
	}

	list := make(List, 0, len(collaborations)+len(groups))
	for _, c := range collaborations {
		list = append(list, c.Invite())
	}
	for _, g := range groups {
		list = append(list, g.Invite())
	}
	return list.Newest(), nil
}
