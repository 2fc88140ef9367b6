package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilePage = "https://www.instagram.com/loja/"

func TestLinks_ResolvesAndDedupes(t *testing.T) {
	page := `
	<html><body>
		<a href="/p/abc/">post</a>
		<a href="/p/abc/">post again</a>
		<a href="https://shop.example.com/">Shop</a>
		<a href="#top">top</a>
		<a href="mailto:x@y.z">mail</a>
		<a href="javascript:void(0)">js</a>
	</body></html>`

	links, err := Links(page, profilePage)
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, "https://www.instagram.com/p/abc/", links[0].URL)
	assert.False(t, links[0].External)
	assert.Equal(t, "post", links[0].Text)

	assert.Equal(t, "https://shop.example.com/", links[1].URL)
	assert.Equal(t, "shop.example.com", links[1].Host)
	assert.True(t, links[1].External)
}

func TestLinks_UnwrapsRedirector(t *testing.T) {
	page := `<a href="https://l.instagram.com/?u=https%3A%2F%2Fwa.me%2F5511999&e=AT0">wa.me/5511999</a>`

	links, err := Links(page, profilePage)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://wa.me/5511999", links[0].URL)
	assert.True(t, links[0].External)
}

func TestLinks_SubdomainsOfSiteAreInternal(t *testing.T) {
	page := `<a href="https://help.instagram.com/faq">help</a>`

	links, err := Links(page, profilePage)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.False(t, links[0].External)
}

func TestExternalLinks(t *testing.T) {
	page := `
		<a href="/explore/">explore</a>
		<a href="http://linktr.ee/loja">linktree</a>
		<a href="https://about.instagram.com">about</a>`

	links, err := ExternalLinks(page, profilePage)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "linktr.ee", links[0].Host)
}

func TestLinks_BadBaseURL(t *testing.T) {
	_, err := Links("<a href='/x'>x</a>", "://bad")
	assert.Error(t, err)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Tom & Jerry say hi", CleanText("  Tom &amp; Jerry\n\t say   hi "))
	assert.Equal(t, "", CleanText(" \n "))
}
