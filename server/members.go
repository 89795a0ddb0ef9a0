package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fajrulhm/perpus-admin/http/request"
	"github.com/fajrulhm/perpus-admin/model"
	"github.com/fajrulhm/perpus-admin/page"
	"github.com/fajrulhm/perpus-admin/view"
)

type membersPage struct {
	basePage
	Members []model.Member
}

func (h *Handler) showMembers(w http.ResponseWriter, r *http.Request) {
	st, err := h.freshState(r, "/members", h.loadMembers)
	if err != nil {
		h.render(w, r, "members", membersPage{basePage: basePage{Active: "members", Error: genericLoadError}})
		return
	}
	h.renderMembers(w, r, st, "", "")
}

func (h *Handler) renderMembers(w http.ResponseWriter, r *http.Request, st *page.State, notice, errMsg string) {
	data := membersPage{
		basePage: basePage{Active: "members", Notice: notice, Error: errMsg},
		Members:  view.SortMembersRecent(st.Members.Items()),
	}
	h.render(w, r, "members", data)
}

func (h *Handler) loadMembers(st *page.State, token string) []page.Task {
	return []page.Task{
		{Name: "members", Run: func(ctx context.Context) error {
			members, err := h.api.ListMembers(ctx, token)
			if err != nil {
				return err
			}
			st.Members.Reset(members)
			return nil
		}},
	}
}

func memberFieldsFromForm(r *http.Request) (model.MemberFields, bool) {
	fields := model.MemberFields{
		NationalID: strings.TrimSpace(r.FormValue("no_ktp")),
		Name:       strings.TrimSpace(r.FormValue("nama")),
		Address:    strings.TrimSpace(r.FormValue("alamat")),
	}
	if birth := strings.TrimSpace(r.FormValue("tgl_lahir")); birth != "" {
		parsed, err := time.Parse("2006-01-02", birth)
		if err != nil {
			return fields, false
		}
		fields.BirthDate = model.Date{Time: parsed}
	}
	if fields.NationalID == "" || fields.Name == "" {
		return fields, false
	}
	return fields, true
}

func (h *Handler) createMember(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/members", h.loadMembers)
	if err != nil {
		h.render(w, r, "members", membersPage{basePage: basePage{Active: "members", Error: genericLoadError}})
		return
	}

	fields, ok := memberFieldsFromForm(r)
	if !ok {
		h.renderMembers(w, r, st, "", "National ID and full name are required.")
		return
	}

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Members, page.OpAppend, 0, func() (model.Member, error) {
		return h.api.CreateMember(r.Context(), token, fields)
	})
	if err != nil {
		h.renderMembers(w, r, st, "", genericMutationError)
		return
	}
	h.renderMembers(w, r, st, "Member added.", "")
}

func (h *Handler) updateMember(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/members", h.loadMembers)
	if err != nil {
		h.render(w, r, "members", membersPage{basePage: basePage{Active: "members", Error: genericLoadError}})
		return
	}

	id := request.RouteInt64Param(r, "id")
	current, ok := st.Members.Find(id)
	if !ok {
		h.renderMembers(w, r, st, "", genericMutationError)
		return
	}
	fields, ok := memberFieldsFromForm(r)
	if !ok {
		h.renderMembers(w, r, st, "", "National ID and full name are required.")
		return
	}

	optimistic := current
	optimistic.NationalID = fields.NationalID
	optimistic.Name = fields.Name
	optimistic.Address = fields.Address
	optimistic.BirthDate = fields.BirthDate

	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Members, page.OpReplace, 0, func() (model.Member, error) {
		if _, err := h.api.UpdateMember(r.Context(), token, id, fields); err != nil {
			return model.Member{}, err
		}
		return optimistic, nil
	})
	if err != nil {
		h.renderMembers(w, r, st, "", genericMutationError)
		return
	}
	h.renderMembers(w, r, st, "Member updated.", "")
}

func (h *Handler) deleteMember(w http.ResponseWriter, r *http.Request) {
	st, err := h.visitState(r, "/members", h.loadMembers)
	if err != nil {
		h.render(w, r, "members", membersPage{basePage: basePage{Active: "members", Error: genericLoadError}})
		return
	}

	id := request.RouteInt64Param(r, "id")
	token := h.token(r)
	_, err = page.Apply(st.Mutations, st.Members, page.OpRemove, id, func() (model.Member, error) {
		return model.Member{}, h.api.DeleteMember(r.Context(), token, id)
	})
	if err != nil {
		h.renderMembers(w, r, st, "", genericMutationError)
		return
	}
	h.renderMembers(w, r, st, "Member deleted.", "")
}
