package web

// The index page: an image that follows the websocket frame stream and a
// keymap matching the terminal frontend.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>mandelterm</title>
<style>
  body { margin: 0; background: #000; overflow: hidden; }
  img { width: 100vw; height: 100vh; object-fit: contain; image-rendering: pixelated; }
</style>
</head>
<body>
<img id="frame" alt="">
<script>
const keymap = {
  "w": "translateUp", "s": "translateDown",
  "a": "translateLeft", "d": "translateRight",
  "+": "scaleIn", "=": "scaleIn",
  "-": "scaleOut", "_": "scaleOut",
  "t": "incIterations", "g": "decIterations",
  "y": "incExp", "h": "decExp",
  "x": "switchFn", "m": "reset",
};

const img = document.getElementById("frame");
const ws = new WebSocket("ws://" + location.host + "/ws");
ws.binaryType = "blob";

function request(op) {
  ws.send(JSON.stringify({
    op: op,
    width: Math.min(window.innerWidth, 1280),
    height: Math.min(window.innerHeight, 1280),
  }));
}

ws.onopen = () => request("");
ws.onmessage = (ev) => {
  const url = URL.createObjectURL(ev.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};

document.addEventListener("keydown", (ev) => {
  const op = keymap[ev.key];
  if (op !== undefined) request(op);
});
window.addEventListener("resize", () => request(""));
</script>
</body>
</html>
`
