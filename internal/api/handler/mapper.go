package handler

import (
	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	return ports.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}
}

func toUpdatePostInput(req updatePostRequest) ports.UpdatePostInput {
	return ports.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}
}

func toListPostsInput(q listPostsQuery) ports.ListPostsInput {
	return ports.ListPostsInput{
		Status:   q.Status,
		AuthorID: q.Author,
		Page:     q.Page,
		Limit:    q.Limit,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toPrincipalResponse(p domain.Principal) principalResponse {
	return principalResponse{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  string(p.Role),
	}
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{Token: r.Token, User: toUserResponse(r.User)}
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toListPostsResponse(r *ports.ListPostsResult) listPostsResponse {
	posts := make([]postResponse, 0, len(r.Items))
	for _, p := range r.Items {
		posts = append(posts, toPostResponse(p))
	}
	return listPostsResponse{
		Posts: posts,
		Pagination: paginationResponse{
			Page:       r.Page,
			Limit:      r.Limit,
			Total:      r.Total,
			TotalPages: r.TotalPages,
		},
	}
}
