// Package web holds the server-rendered HTML surface: compiled templates and
// session flash helpers. The markup is deliberately spare; pages exist to
// carry the text the views produce, not to be styled.
package web

import "html/template"

// Templates compiles every page template. Compiling from strings keeps the
// binary self-contained and lets handler tests build routers without a
// template directory on disk.
func Templates() *template.Template {
	return template.Must(template.New("").Parse(pageTemplates))
}

const pageTemplates = `
{{define "flashes"}}{{range .Flashes}}<p class="flash">{{.}}</p>{{end}}{{end}}

{{define "nav"}}<nav>
{{if .CurrentUser}}<a href="/users/{{.CurrentUser.ID}}">@{{.CurrentUser.Username}}</a>
<a href="/messages/new">New Message</a>
<form method="POST" action="/logout"><button>Log out</button></form>
{{else}}<a href="/login">Log in</a> <a href="/signup">Sign up</a>{{end}}
</nav>{{end}}

{{define "message_list"}}<ul>
{{range .Messages}}<li>
<a href="/users/{{.Author.ID}}">@{{.Author.Username}}</a>
<a href="/messages/{{.ID}}">{{.Text}}</a>
<span>{{.CreatedAt.Format "02 January 2006"}}</span>
<form method="POST" action="/messages/{{.ID}}/like"><button>{{if .Liked}}Unlike{{else}}Like{{end}}</button></form>
</li>{{end}}
</ul>{{end}}

{{define "user_list"}}<ul>
{{range .Users}}<li><a href="/users/{{.ID}}">@{{.Username}}</a> {{.Bio}}</li>{{end}}
</ul>{{end}}

{{define "home.html"}}<!doctype html>
<title>Home</title>
{{template "flashes" .}}
{{template "nav" .}}
<h1>Your timeline</h1>
{{template "message_list" .}}
{{end}}

{{define "home_anon.html"}}<!doctype html>
<title>Welcome</title>
{{template "flashes" .}}
{{template "nav" .}}
<h1>What's happening?</h1>
<p><a href="/signup">Sign up now to get your own personalized timeline!</a></p>
{{end}}

{{define "signup.html"}}<!doctype html>
<title>Sign up</title>
{{template "flashes" .}}
<h1>Join today.</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/signup">
<input name="username" placeholder="Username" value="{{.Username}}">
<input name="email" placeholder="E-mail" value="{{.Email}}">
<input name="password" type="password" placeholder="Password">
<input name="image_url" placeholder="(Optional) Image URL" value="{{.ImageURL}}">
<button>Sign me up!</button>
</form>
{{end}}

{{define "login.html"}}<!doctype html>
<title>Log in</title>
{{template "flashes" .}}
<h1>Welcome back.</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/login">
<input name="username" placeholder="Username" value="{{.Username}}">
<input name="password" type="password" placeholder="Password">
<button>Log in</button>
</form>
{{end}}

{{define "users_index.html"}}<!doctype html>
<title>Users</title>
{{template "flashes" .}}
{{template "nav" .}}
<form method="GET" action="/users"><input name="q" value="{{.Query}}" placeholder="Search"><button>Search</button></form>
{{if .Users}}{{template "user_list" .}}{{else}}<p>Sorry, no users found</p>{{end}}
{{end}}

{{define "users_show.html"}}<!doctype html>
<title>@{{.Profile.Username}}</title>
{{template "flashes" .}}
{{template "nav" .}}
<header>
<img src="{{.Profile.ImageURL}}" alt="@{{.Profile.Username}}">
<h1>@{{.Profile.Username}}</h1>
<p>{{.Profile.Bio}}</p>
<p>{{.Profile.Location}}</p>
<ul>
<li><a href="/users/{{.Profile.ID}}">{{.Profile.MessageCount}} Messages</a></li>
<li><a href="/users/{{.Profile.ID}}/following">{{.Profile.FollowingCount}} Following</a></li>
<li><a href="/users/{{.Profile.ID}}/followers">{{.Profile.FollowerCount}} Followers</a></li>
<li><a href="/users/{{.Profile.ID}}/likes">{{.Profile.LikeCount}} Likes</a></li>
</ul>
{{if .CurrentUser}}{{if eq .CurrentUser.ID .Profile.ID}}
<a href="/users/profile">Edit Profile</a>
<form method="POST" action="/users/delete"><button>Delete Profile</button></form>
{{else if .IsFollowing}}
<form method="POST" action="/users/stop-following/{{.Profile.ID}}"><button>Unfollow</button></form>
{{else}}
<form method="POST" action="/users/follow/{{.Profile.ID}}"><button>Follow</button></form>
{{end}}{{end}}
</header>
{{template "message_list" .}}
{{end}}

{{define "users_following.html"}}<!doctype html>
<title>@{{.User.Username}} / following</title>
{{template "flashes" .}}
{{template "nav" .}}
<h1>Users @{{.User.Username}} is following</h1>
{{template "user_list" .}}
{{end}}

{{define "users_followers.html"}}<!doctype html>
<title>@{{.User.Username}} / followers</title>
{{template "flashes" .}}
{{template "nav" .}}
<h1>Users following @{{.User.Username}}</h1>
{{template "user_list" .}}
{{end}}

{{define "users_likes.html"}}<!doctype html>
<title>@{{.User.Username}} / likes</title>
{{template "flashes" .}}
{{template "nav" .}}
<h1>Messages @{{.User.Username}} liked</h1>
{{template "message_list" .}}
{{end}}

{{define "users_edit.html"}}<!doctype html>
<title>Edit profile</title>
{{template "flashes" .}}
{{template "nav" .}}
<h1>Edit Your Profile.</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/users/profile">
<input name="username" placeholder="Username" value="{{.Username}}">
<input name="email" placeholder="E-mail" value="{{.Email}}">
<input name="image_url" placeholder="(Optional) Profile Image URL" value="{{.ImageURL}}">
<input name="header_image_url" placeholder="(Optional) Header Image URL" value="{{.HeaderImageURL}}">
<input name="location" placeholder="(Optional) Location" value="{{.Location}}">
<textarea name="bio" placeholder="(Optional) Bio">{{.Bio}}</textarea>
<input name="password" type="password" placeholder="Confirm with your password">
<button>Edit this user!</button>
</form>
{{end}}

{{define "messages_new.html"}}<!doctype html>
<title>New message</title>
{{template "flashes" .}}
{{template "nav" .}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/messages/new">
<textarea name="text" placeholder="What's happening?">{{.Text}}</textarea>
<button>Add my message!</button>
</form>
{{end}}

{{define "messages_show.html"}}<!doctype html>
<title>Message</title>
{{template "flashes" .}}
{{template "nav" .}}
<article>
<a href="/users/{{.Message.Author.ID}}">@{{.Message.Author.Username}}</a>
<p>{{.Message.Text}}</p>
<span>{{.Message.CreatedAt.Format "02 January 2006"}}</span>
<p>{{.LikeCount}} likes</p>
{{if .IsOwner}}<form method="POST" action="/messages/{{.Message.ID}}/delete"><button>Delete</button></form>{{end}}
</article>
{{end}}

{{define "404.html"}}<!doctype html>
<title>Not found</title>
<h1>404. Page not found.</h1>
{{end}}
`
