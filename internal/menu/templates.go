package menu

import (
	"fmt"
	"strings"

	"multistick/internal/assist"
	"multistick/internal/blockdev"
	"multistick/internal/payload"
)

// blockHeader opens a menuentry and loop-mounts the image. Every family
// template starts from this.
func blockHeader(label, isoName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "menuentry \"%s\" {\n", label)
	fmt.Fprintf(&b, "    echo \"Loading %s...\"\n", label)
	fmt.Fprintf(&b, "    set isofile=/%s/%s\n", payload.StoreDirName, isoName)
	b.WriteString("    loopback loop ($isopart)$isofile\n")
	return b.String()
}

// windowsBlock chainloads a PE-style image through wimboot. The newc
// archive lists each boot file under both path casings because PE images
// store them in either; wimboot ignores members that do not resolve.
func windowsBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	fmt.Fprintf(&b, "    linux16 /%s\n", assist.HelperRelPath)
	b.WriteString("    initrd16 \\\n")
	b.WriteString("        newc:bootmgr:(loop)/bootmgr \\\n")
	b.WriteString("        newc:bootmgr.exe:(loop)/bootmgr.exe \\\n")
	b.WriteString("        newc:bcd:(loop)/boot/bcd \\\n")
	b.WriteString("        newc:bcd:(loop)/BOOT/BCD \\\n")
	b.WriteString("        newc:boot.sdi:(loop)/boot/boot.sdi \\\n")
	b.WriteString("        newc:boot.sdi:(loop)/BOOT/BOOT.SDI\n")
	b.WriteString("}\n")
	return b.String()
}

// nixosBlock boots the NixOS installer image in place via findiso.
func nixosBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	b.WriteString("    linux (loop)/boot/bzImage findiso=$isofile\n")
	b.WriteString("    initrd (loop)/boot/initrd\n")
	b.WriteString("}\n")
	return b.String()
}

// netinstBlock handles Debian-family network installers (mini.iso
// layout): the kernel and initrd sit at the image root.
func netinstBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	b.WriteString("    linux (loop)/linux vga=788 --- quiet\n")
	b.WriteString("    initrd (loop)/initrd.gz\n")
	b.WriteString("}\n")
	return b.String()
}

// tailsBlock boots Tails with its amnesia-preserving cmdline.
func tailsBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	b.WriteString("    linux (loop)/live/vmlinuz boot=live config findiso=$isofile live-media=removable nopersistence noprompt timezone=Etc/UTC noautologin module=Tails quiet\n")
	b.WriteString("    initrd (loop)/live/initrd.img\n")
	b.WriteString("}\n")
	return b.String()
}

// rescueBlock boots SystemRescue-style repair images, which use the arch
// iso layout under /sysresccd.
func rescueBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	fmt.Fprintf(&b, "    linux (loop)/sysresccd/boot/x86_64/vmlinuz archisobasedir=sysresccd img_dev=/dev/disk/by-label/%s img_loop=$isofile copytoram\n", blockdev.PayloadLabel)
	b.WriteString("    initrd (loop)/sysresccd/boot/x86_64/sysresccd.img\n")
	b.WriteString("}\n")
	return b.String()
}

// debianLiveBlock covers the casper-based live family (Ubuntu and its
// downstreams, Mint, Kali, elementary, ...).
func debianLiveBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	b.WriteString("    linux (loop)/casper/vmlinuz boot=casper iso-scan/filename=$isofile quiet splash ---\n")
	b.WriteString("    initrd (loop)/casper/initrd\n")
	b.WriteString("}\n")
	return b.String()
}

// archBlock boots Arch-derived images, which locate the image through
// img_dev/img_loop.
func archBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	fmt.Fprintf(&b, "    linux (loop)/arch/boot/x86_64/vmlinuz-linux img_dev=/dev/disk/by-label/%s img_loop=$isofile earlymodules=loop copytoram\n", blockdev.PayloadLabel)
	b.WriteString("    initrd (loop)/arch/boot/x86_64/initramfs-linux.img\n")
	b.WriteString("}\n")
	return b.String()
}

// redhatBlock boots Fedora/RHEL-derived images via the pxeboot kernel.
func redhatBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	b.WriteString("    linux (loop)/images/pxeboot/vmlinuz iso-scan/filename=$isofile rd.live.image quiet\n")
	b.WriteString("    initrd (loop)/images/pxeboot/initrd.img\n")
	b.WriteString("}\n")
	return b.String()
}

// genericBlock is the unconditional fallback: a conventional casper-path
// attempt that yields a syntactically valid entry for any ISO9660 image.
func genericBlock(label, isoName string) string {
	var b strings.Builder
	b.WriteString(blockHeader(label, isoName))
	b.WriteString("    linux (loop)/casper/vmlinuz iso-scan/filename=$isofile boot=casper noeject noprompt splash --\n")
	b.WriteString("    initrd (loop)/casper/initrd\n")
	b.WriteString("}\n")
	return b.String()
}
