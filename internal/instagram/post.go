package instagram

import (
	"context"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/extract"
	"github.com/ppiankov/adscout/internal/fault"
	"github.com/ppiankov/adscout/internal/model"
)

// InspectPost reads the ad signals of a post. A missing caption is
// reported through PostSignals.CaptionErr, not as the returned error.
func (n *Navigator) InspectPost(ctx context.Context, postURL string) (model.PostSignals, error) {
	sig := model.PostSignals{URL: postURL}

	if err := n.open(ctx, postURL); err != nil {
		return sig, err
	}

	el, err := n.session.Find(ctx, n.sel.Caption)
	if err != nil {
		sig.CaptionErr = fault.New(fault.KindExtraction, "caption", err)
	} else if text, err := el.Text(); err != nil {
		sig.CaptionErr = fault.New(fault.KindExtraction, "caption text", err)
	} else {
		sig.Caption = extract.CleanText(text)
	}

	sig.PaidPartnership = n.count(ctx, n.sel.PaidPartnership) > 0
	sig.CallToAction = n.count(ctx, n.sel.CallToAction) > 0

	return sig, nil
}

// Comments expands a post's comment list a bounded number of times and
// returns author/text pairs, paired positionally up to the shorter list
func (n *Navigator) Comments(ctx context.Context, postURL string) ([]model.Comment, error) {
	if err := n.open(ctx, postURL); err != nil {
		return nil, err
	}

	if _, err := n.clickIfPresent(ctx, n.sel.ViewAllComments, n.limits.PageSettle); err != nil {
		return nil, err
	}

	expanded := 0
	for i := 0; i < n.limits.ExpandAttempts; i++ {
		el, err := n.session.Find(ctx, n.sel.LoadMoreComments)
		if err != nil {
			break
		}
		if err := el.Click(); err != nil {
			break
		}
		expanded++
		if err := n.sleep(ctx, n.limits.ExpandDelay); err != nil {
			return nil, err
		}
	}

	texts, err := n.session.FindAll(ctx, n.sel.CommentText)
	if err != nil {
		return nil, err
	}
	authors, err := n.session.FindAll(ctx, n.sel.CommentAuthor)
	if err != nil {
		return nil, err
	}

	pairs := min(len(texts), len(authors))
	comments := make([]model.Comment, 0, pairs)
	for i := 0; i < pairs; i++ {
		author, err := authors[i].Text()
		if err != nil {
			n.logger.Debug("comment author unreadable", zap.Int("index", i), zap.Error(err))
			continue
		}
		text, err := texts[i].Text()
		if err != nil {
			n.logger.Debug("comment text unreadable", zap.Int("index", i), zap.Error(err))
			continue
		}
		comments = append(comments, model.Comment{
			Author:  extract.CleanText(author),
			Text:    extract.CleanText(text),
			PostURL: postURL,
		})
	}

	n.logger.Debug("comments read",
		zap.String("post", postURL),
		zap.Int("comments", len(comments)),
		zap.Int("expanded", expanded))
	return comments, nil
}
