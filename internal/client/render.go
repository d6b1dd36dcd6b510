package client

import (
	"fmt"
	"html"
	"strings"
)

// Render functions are pure: state and data in, HTML fragment out. The
// host page swaps the fragment into the target region wholesale.

// RenderHeader draws the auth controls: login/register for visitors,
// user label and logout for the signed-in, plus the add-game affordance
// for the privileged viewer only.
func RenderHeader(user *User, admin bool) string {
	var b strings.Builder

	if user == nil {
		b.WriteString(`<button id="loginBtn" class="btn">Login</button>`)
		b.WriteString(`<button id="registerBtn" class="btn">Register</button>`)
		return b.String()
	}

	fmt.Fprintf(&b, `<span id="userInfo">Signed in as <b>%s</b>%s</span>`,
		html.EscapeString(user.Email), adminSuffix(admin))
	b.WriteString(`<button id="logoutBtn" class="btn">Logout</button>`)
	if admin {
		b.WriteString(`<button id="addGameBtn" class="btn primary">Add game</button>`)
	}

	return b.String()
}

func adminSuffix(admin bool) string {
	if admin {
		return " (admin)"
	}
	return ""
}

// RenderGameList draws the card grid. Edit/delete controls appear only
// for the privileged viewer; an empty list renders the not-found note.
func RenderGameList(list []Game, admin bool) string {
	if len(list) == 0 {
		return `<div class="empty">Nothing found.</div>`
	}

	var b strings.Builder
	b.WriteString(`<div class="grid games">`)
	for _, g := range list {
		fmt.Fprintf(&b, `<div class="card" data-game-id="%d">`, g.ID)

		b.WriteString(`<div class="game-cover">`)
		if g.Cover != "" {
			fmt.Fprintf(&b, `<img src="%s" alt="%s">`,
				html.EscapeString(g.Cover), html.EscapeString(g.Title))
		} else {
			b.WriteString(`<div>No image</div>`)
		}
		if admin {
			fmt.Fprintf(&b, `<button class="btn-small" data-action="edit" data-game-id="%d">Edit</button>`, g.ID)
			fmt.Fprintf(&b, `<button class="btn-small danger" data-action="delete" data-game-id="%d">Delete</button>`, g.ID)
		}
		b.WriteString(`</div>`)

		fmt.Fprintf(&b, `<div><h2>%s</h2></div>`, html.EscapeString(g.Title))
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)

	return b.String()
}

// RenderGameDetail draws the single-game view. The guide body is
// admin-authored HTML and is embedded as-is; for the privileged viewer
// the static view yields to the editor mount point.
func RenderGameDetail(g *Game, admin bool) string {
	if g == nil {
		return `<div class="empty">Nothing found.</div>`
	}

	var b strings.Builder
	b.WriteString(`<div class="card game-guide">`)
	fmt.Fprintf(&b, `<h2>%s</h2>`, html.EscapeString(g.Title))
	fmt.Fprintf(&b, `<div class="game-guide-meta">Genre: %s</div>`, html.EscapeString(g.Genre))
	if g.Cover != "" {
		fmt.Fprintf(&b, `<img src="%s" class="detail-cover">`, html.EscapeString(g.Cover))
	}

	if admin {
		b.WriteString(`<div id="guideEditor"></div>`)
		b.WriteString(`<div class="editor-actions">`)
		b.WriteString(`<button id="saveGuideBtn" class="btn-small primary">Save</button>`)
		b.WriteString(`<button id="cancelGuideBtn" class="btn-small">Cancel</button>`)
		b.WriteString(`</div>`)
	} else {
		fmt.Fprintf(&b, `<div class="game-guide-content">%s</div>`, g.Guide)
	}

	b.WriteString(`</div>`)
	return b.String()
}

// RenderBreadcrumbs draws the "all games / current game" toggle.
func RenderBreadcrumbs(g *Game) string {
	if g == nil {
		return ""
	}
	return fmt.Sprintf(`<span data-action="home">Games</span> / <strong>%s</strong>`,
		html.EscapeString(g.Title))
}
