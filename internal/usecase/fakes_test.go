package usecase

import (
	"context"
	"fmt"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	cp := *user
	f.users = append(f.users, &cp)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsernameAndEmail(_ context.Context, username, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username && u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	if offset >= len(f.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.users) {
		end = len(f.users)
	}
	return f.users[offset:end], nil
}

func (f *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	for i, u := range f.users {
		if u.ID == user.ID {
			cp := *user
			f.users[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("no rows updated")
}

func (f *fakeUserRepo) UpdateConfirmationCode(_ context.Context, id uuid.UUID, code string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.ConfirmationCode = code
			return nil
		}
	}
	return fmt.Errorf("no rows updated")
}

func (f *fakeUserRepo) DeleteByUsername(_ context.Context, username string) error {
	for i, u := range f.users {
		if u.Username == username {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no rows deleted")
}

type fakeTitleRepo struct {
	titles []*entity.Title
}

func (f *fakeTitleRepo) Create(_ context.Context, title *entity.Title) error {
	cp := *title
	f.titles = append(f.titles, &cp)
	return nil
}

func (f *fakeTitleRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Title, error) {
	for _, t := range f.titles {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(_ context.Context, _ repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	if offset >= len(f.titles) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.titles) {
		end = len(f.titles)
	}
	return f.titles[offset:end], nil
}

func (f *fakeTitleRepo) CountAll(_ context.Context, _ repository.TitleFilter) (int64, error) {
	return int64(len(f.titles)), nil
}

func (f *fakeTitleRepo) Update(_ context.Context, title *entity.Title) error {
	for i, t := range f.titles {
		if t.ID == title.ID {
			cp := *title
			f.titles[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("no rows updated")
}

func (f *fakeTitleRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range f.titles {
		if t.ID == id {
			f.titles = append(f.titles[:i], f.titles[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no rows deleted")
}

type fakeReviewRepo struct {
	reviews []*entity.Review
}

func (f *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	cp := *review
	f.reviews = append(f.reviews, &cp)
	return nil
}

func (f *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(_ context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	var matched []*entity.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			matched = append(matched, r)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeReviewRepo) CountByTitleID(_ context.Context, titleID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			n++
		}
	}
	return n, nil
}

func (f *fakeReviewRepo) FindByAuthorAndTitle(_ context.Context, authorID, titleID uuid.UUID) (*entity.Review, error) {
	for _, r := range f.reviews {
		if r.AuthorID == authorID && r.TitleID == titleID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	for i, r := range f.reviews {
		if r.ID == review.ID {
			cp := *review
			f.reviews[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("no rows updated")
}

func (f *fakeReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, r := range f.reviews {
		if r.ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no rows deleted")
}

type fakeCommentRepo struct {
	comments []*entity.Comment
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *entity.Comment) error {
	cp := *comment
	f.comments = append(f.comments, &cp)
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(_ context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	var matched []*entity.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			matched = append(matched, c)
		}
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (f *fakeCommentRepo) CountByReviewID(_ context.Context, reviewID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			n++
		}
	}
	return n, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *entity.Comment) error {
	for i, c := range f.comments {
		if c.ID == comment.ID {
			cp := *comment
			f.comments[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("no rows updated")
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, c := range f.comments {
		if c.ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no rows deleted")
}

type fakeCategoryRepo struct {
	categories []*entity.Category
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	cp := *category
	f.categories = append(f.categories, &cp)
	return nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	if offset >= len(f.categories) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.categories) {
		end = len(f.categories)
	}
	return f.categories[offset:end], nil
}

func (f *fakeCategoryRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.categories)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, c := range f.categories {
		if c.Slug == slug {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no rows deleted")
}

type fakeGenreRepo struct {
	genres []*entity.Genre

	// byTitle maps a title to the genres assigned through Replace.
	byTitle map[uuid.UUID][]uuid.UUID
}

func (f *fakeGenreRepo) Create(_ context.Context, genre *entity.Genre) error {
	cp := *genre
	f.genres = append(f.genres, &cp)
	return nil
}

func (f *fakeGenreRepo) FindBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	for _, g := range f.genres {
		if g.Slug == slug {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeGenreRepo) FindBySlugs(_ context.Context, slugs []string) ([]*entity.Genre, error) {
	var matched []*entity.Genre
	for _, g := range f.genres {
		for _, slug := range slugs {
			if g.Slug == slug {
				matched = append(matched, g)
				break
			}
		}
	}
	return matched, nil
}

func (f *fakeGenreRepo) FindByTitleID(_ context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	var matched []*entity.Genre
	for _, id := range f.byTitle[titleID] {
		for _, g := range f.genres {
			if g.ID == id {
				matched = append(matched, g)
			}
		}
	}
	return matched, nil
}

func (f *fakeGenreRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Genre, error) {
	if offset >= len(f.genres) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.genres) {
		end = len(f.genres)
	}
	return f.genres[offset:end], nil
}

func (f *fakeGenreRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(f.genres)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	for i, g := range f.genres {
		if g.Slug == slug {
			f.genres = append(f.genres[:i], f.genres[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("no rows deleted")
}

// fakeTitleGenreRepo writes assignments into the genre fake so
// FindByTitleID sees them.
type fakeTitleGenreRepo struct {
	genres *fakeGenreRepo
}

func (f *fakeTitleGenreRepo) Replace(_ context.Context, titleID uuid.UUID, genreIDs []uuid.UUID) error {
	if f.genres.byTitle == nil {
		f.genres.byTitle = make(map[uuid.UUID][]uuid.UUID)
	}
	f.genres.byTitle[titleID] = genreIDs
	return nil
}

func (f *fakeTitleGenreRepo) DeleteByTitleID(_ context.Context, titleID uuid.UUID) error {
	delete(f.genres.byTitle, titleID)
	return nil
}

// fakeMailer records outgoing mail and optionally fails every send.
type fakeMailer struct {
	sent []fakeMail
	fail bool
}

type fakeMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.fail {
		return fmt.Errorf("smtp unreachable")
	}
	f.sent = append(f.sent, fakeMail{to: to, subject: subject, body: body})
	return nil
}

func newFakeRepository() (*repository.Repository, *fakeUserRepo, *fakeTitleRepo, *fakeReviewRepo, *fakeCommentRepo) {
	users := &fakeUserRepo{}
	titles := &fakeTitleRepo{}
	reviews := &fakeReviewRepo{}
	comments := &fakeCommentRepo{}
	genres := &fakeGenreRepo{}

	repo := &repository.Repository{
		User:       users,
		Category:   &fakeCategoryRepo{},
		Genre:      genres,
		Title:      titles,
		TitleGenre: &fakeTitleGenreRepo{genres: genres},
		Review:     reviews,
		Comment:    comments,
	}
	return repo, users, titles, reviews, comments
}
