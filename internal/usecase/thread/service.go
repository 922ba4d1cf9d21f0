package thread

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-threads/domain"
)

// DefaultMaxDepth is used when the service is built with a non-positive depth.
const DefaultMaxDepth = 64

type Service struct {
	blogs    domain.BlogRepository
	comments domain.CommentRepository
	replies  domain.ReplyRepository
	identity domain.IdentityClient
	guard    domain.OwnershipGuard
	cascade  domain.CascadeDeleter
	maxDepth int
	now      func() time.Time
}

var _ domain.ThreadUsecase = (*Service)(nil)

// NewService will create a new thread service object
func NewService(
	b domain.BlogRepository,
	c domain.CommentRepository,
	r domain.ReplyRepository,
	id domain.IdentityClient,
	g domain.OwnershipGuard,
	cd domain.CascadeDeleter,
	maxDepth int,
) *Service {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Service{
		blogs:    b,
		comments: c,
		replies:  r,
		identity: id,
		guard:    g,
		cascade:  cd,
		maxDepth: maxDepth,
		now:      time.Now,
	}
}

// Assemble builds the comment forest of a blog level by level: each round
// fetches the replies of the whole frontier at once. A reply id seen twice
// is skipped and nothing deeper than maxDepth is fetched.
func (s *Service) Assemble(ctx context.Context, blogID string) ([]*domain.Comment, error) {
	comments, err := s.comments.FetchByBlog(ctx, blogID)
	if err != nil {
		logrus.Errorf("failed to fetch comments of blog %s: %v", blogID, err)
		return nil, err
	}
	if len(comments) == 0 {
		return nil, &domain.Error{
			Kind:   domain.ErrNotFound,
			Entity: domain.EntityComment,
			Err:    fmt.Errorf("blog %s has no comments", blogID),
		}
	}

	roots := make([]*domain.Comment, len(comments))
	slots := make(map[string]*[]*domain.Reply, len(comments))
	frontier := make([]string, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		c.Replies = []*domain.Reply{}
		roots[i] = c
		slots[c.ID] = &c.Replies
		frontier = append(frontier, c.ID)
	}

	var attached []*domain.Reply
	for depth := 1; len(frontier) > 0; depth++ {
		if depth > s.maxDepth {
			logrus.Warnf("thread of blog %s cut at depth %d", blogID, s.maxDepth)
			break
		}
		replies, err := s.replies.FetchByParents(ctx, frontier)
		if err != nil {
			logrus.Errorf("failed to fetch replies of blog %s at depth %d: %v", blogID, depth, err)
			return nil, err
		}

		next := make([]string, 0, len(replies))
		for i := range replies {
			r := &replies[i]
			if _, seen := slots[r.ID]; seen {
				logrus.Warnf("reply %s reached twice in thread of blog %s, skipped", r.ID, blogID)
				continue
			}
			slot, ok := slots[r.Parent.ID]
			if !ok {
				continue
			}
			r.Replies = []*domain.Reply{}
			*slot = append(*slot, r)
			slots[r.ID] = &r.Replies
			attached = append(attached, r)
			next = append(next, r.ID)
		}
		frontier = next
	}

	s.enrich(ctx, roots, attached)
	return roots, nil
}

func (s *Service) enrich(ctx context.Context, roots []*domain.Comment, replies []*domain.Reply) {
	ids := make([]string, 0, len(roots)+len(replies))
	for _, c := range roots {
		ids = append(ids, c.UserID)
	}
	for _, r := range replies {
		ids = append(ids, r.UserID)
	}

	users := s.identity.LookupMany(ctx, ids)
	for _, c := range roots {
		c.User = users[c.UserID]
	}
	for _, r := range replies {
		r.User = users[r.UserID]
	}
}

func (s *Service) AddComment(ctx context.Context, callerID, blogID, text string) (domain.Comment, error) {
	b, err := s.blogs.GetByID(ctx, blogID)
	if err != nil {
		return domain.Comment{}, err
	}
	if !b.CommentsEnabled {
		return domain.Comment{}, &domain.Error{Kind: domain.ErrCommentsDisabled, Entity: domain.EntityBlog, ID: blogID}
	}

	c := domain.Comment{
		ID:          uuid.NewString(),
		UserID:      callerID,
		BlogID:      blogID,
		Text:        text,
		CommentedAt: s.now().UTC(),
		Replies:     []*domain.Reply{},
	}
	if err := s.comments.Store(ctx, &c); err != nil {
		logrus.Errorf("failed to store comment on blog %s: %v", blogID, err)
		return domain.Comment{}, domain.Failed(domain.ErrInsertionFailed, domain.EntityComment, c.ID, err)
	}
	c.User = s.identity.Lookup(ctx, callerID)
	return c, nil
}

func (s *Service) AddReply(ctx context.Context, callerID, parentID, text string) (domain.Reply, error) {
	parent, _, err := s.guard.Locate(ctx, parentID)
	if err != nil {
		return domain.Reply{}, err
	}

	r := domain.Reply{
		ID:        uuid.NewString(),
		UserID:    callerID,
		Parent:    parent,
		Text:      text,
		RepliedAt: s.now().UTC(),
		Replies:   []*domain.Reply{},
	}
	if err := s.replies.Store(ctx, &r); err != nil {
		logrus.Errorf("failed to store reply to %s %s: %v", parent.Kind, parentID, err)
		return domain.Reply{}, domain.Failed(domain.ErrInsertionFailed, domain.EntityReply, r.ID, err)
	}
	r.User = s.identity.Lookup(ctx, callerID)
	return r, nil
}

func (s *Service) EditContent(ctx context.Context, callerID, id, text string) (domain.ContentRef, error) {
	ref, err := s.guard.Content(ctx, id, callerID)
	if err != nil {
		return domain.ContentRef{}, err
	}

	entity := domain.EntityComment
	if ref.Kind == domain.ParentReply {
		entity = domain.EntityReply
		err = s.replies.UpdateText(ctx, id, text)
	} else {
		err = s.comments.UpdateText(ctx, id, text)
	}
	if err != nil {
		logrus.Errorf("failed to update %s %s: %v", entity, id, err)
		return domain.ContentRef{}, domain.Failed(domain.ErrUpdateFailed, entity, id, err)
	}
	return ref, nil
}

func (s *Service) DeleteComment(ctx context.Context, callerID, id string) error {
	if _, err := s.guard.Comment(ctx, id, callerID); err != nil {
		return err
	}
	return s.cascade.Comment(ctx, id)
}

func (s *Service) DeleteReply(ctx context.Context, callerID, id string) error {
	if _, err := s.guard.Reply(ctx, id, callerID); err != nil {
		return err
	}
	return s.cascade.Reply(ctx, id)
}
