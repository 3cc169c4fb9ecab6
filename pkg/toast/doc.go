// Package toast holds the notification state consumed by a toast renderer.
//
// Success, info, and warning toasts are transient: they expire DefaultTTL
// after being pushed. Error toasts are sticky and stay active until
// dismissed. How toasts are drawn or animated is up to the renderer; this
// package only tracks what is currently showing.
package toast
