// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/oblog-go/internal/auth"
	"github.com/olegiv/oblog-go/internal/model"
	"github.com/olegiv/oblog-go/internal/util"
)

// maxSeedPosts guards against repeatedly seeding the same database.
const maxSeedPosts = 60

// demoUsers are the demo author accounts.
var demoUsers = []struct {
	Email    string
	Password string
	Name     string
}{
	{"joe@example.com", "password", "Joe"},
	{"sawyer@example.com", "password", "Sawyer"},
	{"danielle@example.com", "password", "Danielle"},
}

// demoBodies are the demo post bodies, rotated across the demo authors.
var demoBodies = []string{
	"Iis repugnemus perficitur dei persuadere dum praesertim familiarem quodcumqu.",
	"Reliqui ut vigilia mo at ostendi. Ut re vero unde soni ex ac solo. Quicquam temporis physicae ex ex co. Gi quibusnam perceptio ad ac industria persuasum eminenter. Male vi eram quin ha ii ad modo inde. Nos via probentur obversari ope opportune. Ea de animam iisdem juncta.",
	"Ita dependent productus dat simplicia uno. Aciem corpo.",
	"Re invenerunt transferre imbecillia prosecutus de dissolvant gi occasionem. Obstat ferant suo multae putavi quodam partes sit hoc. Sed ope sex ero conemur aliq.",
	"Ipso in utor et sine. Tum hic agnosco proprie illarum cum agendam efficta mem creatum.",
	"Expectem decipior eam abducere doctrina ero habuimus sae cavendum. Tractatu admittit ut de cavendum occurrit invenero co alicujus. Re invenerunt transferre imbecillia prosecutus de dissolvant gi occasionem.",
	"Quaslibet meditatio meo libertate ens praeditis. Uti otii nam hac dei haud alia deus. Deinde realem falsae statim usu rantem hos inquam dei.",
	"Dari boni co vi anno. Extitisse tantumdem abstinere formantur dat suspicari mea est.",
	"Evidentius aliquoties at si perficitur de expectabam deceperunt. Sae tot dominum dicimus futurus divelli. Sex qui quales aptior tamque hic.",
	"Quantumvis persuadeam ha se ut credidique ac integritas.",
	"Alterius addamque ea gi fingerem sequatur sessione is credendi.",
	"Ea an istis vetus demus. Divinae videmur ubi proinde una cum rei. Pappo et ideae summa longa locis to.",
	"Extitisse tantumdem abstinere formantur dat suspicari mea est. Novi vel has fal sine dat etsi.",
}

// SeedDemo creates demo authors and posts when enabled. Posts are spread
// two weeks apart so the archive has multiple months and years to facet on.
// Safe to call repeatedly: it bails once the post count passes a threshold.
func SeedDemo(ctx context.Context, db *sql.DB, enabled bool) error {
	if !enabled {
		return nil
	}

	queries := New(db)

	postCount, err := queries.CountPosts(ctx, PostFilter{})
	if err != nil {
		return fmt.Errorf("counting posts: %w", err)
	}
	if postCount > maxSeedPosts {
		slog.Info("demo seed skipped, database already populated", "posts", postCount)
		return nil
	}

	// Ensure the demo authors exist
	authorIDs := make([]int64, 0, len(demoUsers))
	for _, du := range demoUsers {
		user, err := queries.GetUserByEmail(ctx, du.Email)
		if errors.Is(err, sql.ErrNoRows) {
			passwordHash, hashErr := auth.HashPassword(du.Password)
			if hashErr != nil {
				return fmt.Errorf("hashing demo password: %w", hashErr)
			}
			now := time.Now()
			user, err = queries.CreateUser(ctx, CreateUserParams{
				Email:        du.Email,
				PasswordHash: passwordHash,
				Name:         du.Name,
				CreatedAt:    now,
				UpdatedAt:    now,
			})
		}
		if err != nil {
			return fmt.Errorf("seeding user %s: %w", du.Email, err)
		}
		authorIDs = append(authorIDs, user.ID)
	}

	now := time.Now().UTC()
	created := 0
	for idx, body := range demoBodies {
		title := fmt.Sprintf("Post Number %d", postCount+int64(idx)+1)
		_, err := queries.CreatePost(ctx, CreatePostParams{
			Title:    title,
			Slug:     util.Slugify(title),
			Body:     body,
			PubDate:  now.Add(-time.Duration(idx) * 14 * 24 * time.Hour),
			AuthorID: authorIDs[idx%len(authorIDs)],
		})
		if err != nil {
			return fmt.Errorf("seeding post %q: %w", title, err)
		}
		created++
	}

	slog.Info("demo content seeded",
		"category", model.EventCategorySystem,
		"authors", len(authorIDs),
		"posts", created,
	)
	return nil
}
